package commands

import (
	"context"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves each cart position against the catalog, snapshots prices and titles
// into order lines, and persists the order in "pending" status.
//
// Event positions are admitted under a capacity bound: the event row is locked
// for the transaction and outstanding demand from other open orders is counted,
// so concurrent creations cannot collectively promise more seats than exist.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, buyerProvider, notifier, logger)
//	item, _ := NewCreateOrderItem(eventID, order.LineTypeEvent, 2)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), buyerID, "jo@example.com", []CreateOrderItem{item})
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now pending and awaiting payment
type CreateOrderCommandHandler struct {
	uowFactory    CreateOrderUoWFactory
	buyerProvider ports.BuyerProvider
	notifier      statusNotifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a CreateOrderUoWFactory for transactional persistence and a
// BuyerProvider for buyer existence checks.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	buyerProvider ports.BuyerProvider,
	notifier ports.Notifier,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		buyerProvider: buyerProvider,
		notifier:      newStatusNotifier(notifier, logger),
	}
}

// Handle processes the order creation command.
// Verifies the buyer exists, resolves every cart position to a priced line,
// and creates the order in "pending" status within a single transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.buyerProvider.BuyerExists(ctx, cmd.BuyerID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("buyer", cmd.BuyerID())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines := make([]*order.Line, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		line, lineErr := h.resolveItem(ctx, uow, item)
		if lineErr != nil {
			return lineErr
		}
		lines = append(lines, line)
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.BuyerID(), cmd.ContactEmail(), lines, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, newOrder, "")
	return nil
}

// resolveItem turns a cart position into a priced order line using the catalog
// snapshot for the item's declared product type.
func (h CreateOrderCommandHandler) resolveItem(
	ctx context.Context,
	uow CreateOrderUoW,
	item CreateOrderItem,
) (*order.Line, error) {
	var (
		price decimal.Decimal
		title string
	)

	catalogRepo := uow.CatalogRepository()

	switch item.ProductType() {
	case order.LineTypeCourse:
		course, err := catalogRepo.GetCourse(ctx, item.ProductID())
		if err != nil {
			return nil, err
		}
		if !course.Purchasable {
			return nil, newNotPurchasableError(course.Title)
		}
		price, title = course.Price, course.Title

	case order.LineTypeEvent:
		event, err := catalogRepo.GetEventForUpdate(ctx, item.ProductID())
		if err != nil {
			return nil, err
		}
		if !event.Purchasable {
			return nil, newNotPurchasableError(event.Title)
		}
		if err = h.checkEventDemand(ctx, uow, item, event.AvailableCapacity); err != nil {
			return nil, err
		}
		price, title = event.Price, event.Title

	case order.LineTypeDigitalGood:
		good, err := catalogRepo.GetDigitalGood(ctx, item.ProductID())
		if err != nil {
			return nil, err
		}
		if !good.Purchasable {
			return nil, newNotPurchasableError(good.Title)
		}
		price, title = good.Price, good.Title

	default:
		return nil, errs.NewValueIsInvalidError("product type")
	}

	return order.NewLine(kernel.NewUUID(), item.ProductID(), item.ProductType(), item.Quantity(), price, title)
}

// checkEventDemand enforces the creation-time capacity bound. The event row is
// already locked, so the demand count cannot race with a concurrent creation.
func (h CreateOrderCommandHandler) checkEventDemand(
	ctx context.Context,
	uow CreateOrderUoW,
	item CreateOrderItem,
	availableCapacity int,
) error {
	demand, err := uow.OrderRepository().OutstandingEventDemand(ctx, item.ProductID())
	if err != nil {
		return err
	}

	if demand+item.Quantity() > availableCapacity {
		return errs.NewConflictErrorWithCause(
			"event capacity",
			fmt.Errorf("requested %d seats, %d available after %d outstanding",
				item.Quantity(), availableCapacity, demand),
		)
	}
	return nil
}

func newNotPurchasableError(title string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"product",
		fmt.Errorf("%s is not purchasable", title),
	)
}
