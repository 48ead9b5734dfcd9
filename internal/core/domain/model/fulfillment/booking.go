package fulfillment

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// ErrBookingIsNotConstructed is returned when a Booking was not created
// through NewBooking or RestoreBooking.
var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking constructor")

// BookingStatus is the sub-status of an event booking.
type BookingStatus int

const (
	// BookingStatusUnknown represents an invalid or undefined sub-status.
	BookingStatusUnknown BookingStatus = iota

	// BookingConfirmed means the seats are held for the buyer.
	BookingConfirmed

	// BookingCancelled means the booking was reversed and its seats released.
	BookingCancelled
)

// Booking records event seats granted for a single order line.
// Attendees mirrors the line quantity and is the amount of capacity the
// booking consumes.
type Booking struct {
	id          kernel.UUID
	orderLineID kernel.UUID
	buyerID     kernel.UUID
	eventID     kernel.UUID
	attendees   int
	status      BookingStatus

	guard kernel.ConstructorGuard
}

// NewBooking creates a confirmed booking for the given order line.
func NewBooking(id, orderLineID, buyerID, eventID kernel.UUID, attendees int) (*Booking, error) {
	if err := errors.Join(
		id.Validate(),
		orderLineID.Validate(),
		buyerID.Validate(),
		eventID.Validate(),
	); err != nil {
		return nil, err
	}

	if attendees <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"attendees is invalid",
			fmt.Errorf("%d is not greater than 0", attendees),
		)
	}

	return &Booking{
		id:          id,
		orderLineID: orderLineID,
		buyerID:     buyerID,
		eventID:     eventID,
		attendees:   attendees,
		status:      BookingConfirmed,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreBooking reconstructs a booking from persistence.
func RestoreBooking(id, orderLineID, buyerID, eventID kernel.UUID, attendees int, status BookingStatus) (*Booking, error) {
	booking, err := NewBooking(id, orderLineID, buyerID, eventID, attendees)
	if err != nil {
		return nil, err
	}
	booking.status = status
	return booking, nil
}

// Validate ensures the Booking was created via a constructor.
func (b *Booking) Validate() error {
	if b == nil {
		return ErrBookingIsNotConstructed
	}
	return b.guard.Validate(ErrBookingIsNotConstructed)
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() kernel.UUID { return b.id }

// OrderLineID returns the order line this booking was granted for.
func (b *Booking) OrderLineID() kernel.UUID { return b.orderLineID }

// BuyerID returns the booking buyer.
func (b *Booking) BuyerID() kernel.UUID { return b.buyerID }

// EventID returns the booked event.
func (b *Booking) EventID() kernel.UUID { return b.eventID }

// Attendees returns the amount of capacity the booking consumes.
func (b *Booking) Attendees() int { return b.attendees }

// Status returns the booking sub-status.
func (b *Booking) Status() BookingStatus { return b.status }

// Cancel reverses the booking. Returns true if the sub-status changed,
// false if the booking was already cancelled.
func (b *Booking) Cancel() bool {
	if b.status == BookingCancelled {
		return false
	}
	b.status = BookingCancelled
	return true
}
