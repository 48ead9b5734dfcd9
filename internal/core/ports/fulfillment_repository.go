package ports

import (
	"context"

	"commerce/internal/core/domain/model/fulfillment"
	"commerce/internal/core/domain/model/kernel"
)

// FulfillmentRepository persists the access-right records granted at
// fulfillment time. All Add methods are insert-if-absent keyed on the order
// line identifier and report whether a row was actually created, which is the
// basis for idempotent granting: counters are only touched when the record is
// new.
type FulfillmentRepository interface {
	// AddEnrollment inserts the enrollment unless one already exists for its
	// order line. Returns true when a row was created.
	AddEnrollment(ctx context.Context, record *fulfillment.Enrollment) (bool, error)

	// GetEnrollmentByLine retrieves the enrollment granted for an order line.
	GetEnrollmentByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.Enrollment, error)

	// UpdateEnrollment persists sub-status changes of an existing enrollment.
	UpdateEnrollment(ctx context.Context, record *fulfillment.Enrollment) error

	// AddBooking inserts the booking unless one already exists for its order
	// line. Returns true when a row was created.
	AddBooking(ctx context.Context, record *fulfillment.Booking) (bool, error)

	// GetBookingByLine retrieves the booking granted for an order line.
	GetBookingByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.Booking, error)

	// UpdateBooking persists sub-status changes of an existing booking.
	UpdateBooking(ctx context.Context, record *fulfillment.Booking) error

	// AddDownloadGrant inserts the grant unless one already exists for its
	// order line. Returns true when a row was created.
	AddDownloadGrant(ctx context.Context, record *fulfillment.DownloadGrant) (bool, error)

	// GetDownloadGrantByLine retrieves the grant issued for an order line.
	GetDownloadGrantByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.DownloadGrant, error)

	// UpdateDownloadGrant persists sub-status changes of an existing grant.
	UpdateDownloadGrant(ctx context.Context, record *fulfillment.DownloadGrant) error
}
