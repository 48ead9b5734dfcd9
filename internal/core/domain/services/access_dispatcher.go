package services

import (
	"context"
	"fmt"

	"commerce/internal/core/domain/model/fulfillment"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// AccessStores bundles the transaction-bound repositories an access handler
// mutates. Both repositories must come from the same unit of work so a grant
// and its counter change commit or roll back together.
type AccessStores struct {
	Catalog     ports.CatalogRepository
	Fulfillment ports.FulfillmentRepository
}

// accessHandler is the grant/revoke pair for one product-type variant.
type accessHandler interface {
	Grant(ctx context.Context, stores AccessStores, buyerID kernel.UUID, line *order.Line) error
	Revoke(ctx context.Context, stores AccessStores, buyerID kernel.UUID, line *order.Line) error
}

// AccessDispatcher routes each order line to the access handler for its
// product type.
//
// Granting is idempotent: every handler inserts its fulfillment record
// if-absent keyed on the line identifier and only touches the shared counter
// when a record was actually created. Revoking flips the record sub-status
// and only adjusts the counter when the flip happened. Repeating either
// operation therefore produces the same final state.
//
// Example usage:
//
//	dispatcher := services.NewAccessDispatcher()
//	stores := services.AccessStores{
//	    Catalog:     uow.CatalogRepository(),
//	    Fulfillment: uow.FulfillmentRepository(),
//	}
//	for _, line := range ord.Lines() {
//	    if err := dispatcher.Grant(ctx, stores, ord.BuyerID(), line); err != nil {
//	        return err // roll back the whole batch
//	    }
//	}
type AccessDispatcher struct {
	handlers map[order.LineType]accessHandler
}

// NewAccessDispatcher creates a dispatcher covering all declared line types.
func NewAccessDispatcher() AccessDispatcher {
	return AccessDispatcher{
		handlers: map[order.LineType]accessHandler{
			order.LineTypeCourse:      courseAccess{},
			order.LineTypeEvent:       eventAccess{},
			order.LineTypeDigitalGood: downloadAccess{},
		},
	}
}

// Grant dispatches the line to its product type's granting operation.
// Returns a validation error for an unknown line type.
func (d AccessDispatcher) Grant(
	ctx context.Context,
	stores AccessStores,
	buyerID kernel.UUID,
	line *order.Line,
) error {
	handler, err := d.handlerFor(line)
	if err != nil {
		return err
	}
	return handler.Grant(ctx, stores, buyerID, line)
}

// Revoke dispatches the line to its product type's revoking operation.
// Returns a validation error for an unknown line type.
func (d AccessDispatcher) Revoke(
	ctx context.Context,
	stores AccessStores,
	buyerID kernel.UUID,
	line *order.Line,
) error {
	handler, err := d.handlerFor(line)
	if err != nil {
		return err
	}
	return handler.Revoke(ctx, stores, buyerID, line)
}

func (d AccessDispatcher) handlerFor(line *order.Line) (accessHandler, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}

	handler, ok := d.handlers[line.Type()]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"line type",
			fmt.Errorf("no access handler for line type %s", line.Type()),
		)
	}
	return handler, nil
}

// courseAccess grants and revokes course enrollment.
type courseAccess struct{}

func (courseAccess) Grant(ctx context.Context, stores AccessStores, buyerID kernel.UUID, line *order.Line) error {
	enrollment, err := fulfillment.NewEnrollment(kernel.NewUUID(), line.ID(), buyerID, line.ProductID())
	if err != nil {
		return err
	}

	created, err := stores.Fulfillment.AddEnrollment(ctx, enrollment)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	return stores.Catalog.IncrementCourseEnrollment(ctx, line.ProductID())
}

func (courseAccess) Revoke(ctx context.Context, stores AccessStores, _ kernel.UUID, line *order.Line) error {
	enrollment, err := stores.Fulfillment.GetEnrollmentByLine(ctx, line.ID())
	if err != nil {
		return err
	}

	if !enrollment.Cancel() {
		return nil
	}

	if err := stores.Fulfillment.UpdateEnrollment(ctx, enrollment); err != nil {
		return err
	}

	return stores.Catalog.DecrementCourseEnrollment(ctx, line.ProductID())
}

// eventAccess grants and revokes event bookings against the capacity counter.
type eventAccess struct{}

func (eventAccess) Grant(ctx context.Context, stores AccessStores, buyerID kernel.UUID, line *order.Line) error {
	booking, err := fulfillment.NewBooking(kernel.NewUUID(), line.ID(), buyerID, line.ProductID(), line.Quantity())
	if err != nil {
		return err
	}

	created, err := stores.Fulfillment.AddBooking(ctx, booking)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	return stores.Catalog.ReserveEventCapacity(ctx, line.ProductID(), line.Quantity())
}

func (eventAccess) Revoke(ctx context.Context, stores AccessStores, _ kernel.UUID, line *order.Line) error {
	booking, err := stores.Fulfillment.GetBookingByLine(ctx, line.ID())
	if err != nil {
		return err
	}

	if !booking.Cancel() {
		return nil
	}

	if err := stores.Fulfillment.UpdateBooking(ctx, booking); err != nil {
		return err
	}

	return stores.Catalog.ReleaseEventCapacity(ctx, line.ProductID(), booking.Attendees())
}

// downloadAccess grants and revokes digital-good download grants.
type downloadAccess struct{}

func (downloadAccess) Grant(ctx context.Context, stores AccessStores, buyerID kernel.UUID, line *order.Line) error {
	grant, err := fulfillment.NewDownloadGrant(kernel.NewUUID(), line.ID(), buyerID, line.ProductID())
	if err != nil {
		return err
	}

	created, err := stores.Fulfillment.AddDownloadGrant(ctx, grant)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	return stores.Catalog.IncrementDownloadCount(ctx, line.ProductID())
}

func (downloadAccess) Revoke(ctx context.Context, stores AccessStores, _ kernel.UUID, line *order.Line) error {
	grant, err := stores.Fulfillment.GetDownloadGrantByLine(ctx, line.ID())
	if err != nil {
		return err
	}

	// The record is retained as an audit trail; only the sub-status flips.
	if !grant.Revoke() {
		return nil
	}

	if err := stores.Fulfillment.UpdateDownloadGrant(ctx, grant); err != nil {
		return err
	}

	return stores.Catalog.DecrementDownloadCount(ctx, line.ProductID())
}
