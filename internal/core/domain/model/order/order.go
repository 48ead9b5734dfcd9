package order

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// taxRate is the fixed sales tax applied to every order subtotal.
var taxRate = decimal.RequireFromString("0.08")

// Order represents a purchase in the system. It is the aggregate root that
// manages the order lifecycle from creation through payment to fulfillment,
// cancellation, or refund.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and buyer reference
//   - Must contain at least one line; lines are immutable after creation
//   - total == subtotal + tax and subtotal == sum of line subtotals
//   - Status transitions follow the declared transition table
//   - The payment reference is unique once set and never overwritten
//   - Can only be created through the NewOrder constructor
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. Orders are never hard-deleted;
// cancellation and refund are status transitions, not erasures.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// buyerID references the purchasing buyer
	buyerID kernel.UUID

	// contactEmail is the address order notifications are sent to
	contactEmail string

	// status represents the current state in the order lifecycle
	status Status

	// lines holds the immutable line items captured at creation
	lines []*Line

	// subtotal, tax, and total are fixed-point currency amounts
	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal

	// paymentRef is the external payment reference (nil until attached, unique once set)
	paymentRef *string

	// paymentMethod is the method reported by the payment processor
	paymentMethod *string

	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to create
// a valid Order, ensuring all business invariants are maintained.
//
// The subtotal is computed as the sum of line subtotals, tax as a fixed 8% of
// the subtotal rounded to two decimal places, and total as subtotal plus tax.
// The order starts in Pending status with no payment reference.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - buyerID: Purchasing buyer (must be a valid UUID)
//   - contactEmail: Notification address (must not be empty)
//   - lines: Line items (must be non-empty, each constructed via NewLine)
//   - now: Creation timestamp
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	contactEmail string,
	lines []*Line,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
	); err != nil {
		return nil, err
	}

	if contactEmail == "" {
		return nil, errs.NewValueIsRequiredError("contactEmail")
	}

	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("cart lines")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(line.Subtotal())
	}

	tax := subtotal.Mul(taxRate).Round(2)

	return &Order{
		id:            id,
		buyerID:       buyerID,
		contactEmail:  contactEmail,
		status:        Pending,
		lines:         lines,
		subtotal:      subtotal,
		tax:           tax,
		total:         subtotal.Add(tax),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-deriving
// totals. It validates identifiers, status, and lines, and trusts the stored
// amounts, which were computed by NewOrder at creation time.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	contactEmail string,
	status Status,
	lines []*Line,
	subtotal decimal.Decimal,
	tax decimal.Decimal,
	total decimal.Decimal,
	paymentRef *string,
	paymentMethod *string,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		buyerID:       buyerID,
		contactEmail:  contactEmail,
		status:        status,
		lines:         lines,
		subtotal:      subtotal,
		tax:           tax,
		total:         total,
		paymentRef:    paymentRef,
		paymentMethod: paymentMethod,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		completedAt:   completedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder
// or RestoreOrder. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the purchasing buyer's identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// ContactEmail returns the notification address captured at creation.
func (o *Order) ContactEmail() string {
	return o.contactEmail
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Lines returns the order's line items. The slice is a copy; lines themselves
// are immutable.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Subtotal returns the sum of line subtotals.
func (o *Order) Subtotal() decimal.Decimal {
	return o.subtotal
}

// Tax returns the fixed-rate tax computed at creation.
func (o *Order) Tax() decimal.Decimal {
	return o.tax
}

// Total returns subtotal plus tax.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// PaymentRef returns the external payment reference, or nil if none is attached.
func (o *Order) PaymentRef() *string {
	return o.paymentRef
}

// PaymentMethod returns the payment method, or nil if none is attached.
func (o *Order) PaymentMethod() *string {
	return o.paymentMethod
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last status change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CompletedAt returns the timestamp of the first entry into Completed,
// or nil if the order never completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// TransitionTo advances the order to target if the declared transition table
// permits it.
//
// Business rules:
//   - A disallowed (from, to) pair leaves the order unchanged and returns
//     a validation error naming the pair
//   - updatedAt is set on every successful transition
//   - completedAt is set only on first entry to Completed
//
// Returns:
//   - nil on a successful transition
//   - error if the transition is not allowed
func (o *Order) TransitionTo(target Status, now time.Time) error {
	newStatus, err := o.status.Transition(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	if newStatus == Completed && o.completedAt == nil {
		o.completedAt = &now
	}
	return nil
}

// AttachPayment records an externally-verified payment reference and method.
//
// The operation is idempotent: re-attaching the same reference is a no-op
// success and returns changed=false. Attaching a different reference to an
// order that already has one returns a conflict error. On first successful
// attach the order transitions from Pending to PaymentPending.
//
// Returns:
//   - (true, nil) when the reference was attached
//   - (false, nil) when the identical reference was already attached
//   - (false, error) on a conflicting reference or disallowed transition
func (o *Order) AttachPayment(paymentRef, paymentMethod string, now time.Time) (bool, error) {
	if paymentRef == "" {
		return false, errs.NewValueIsRequiredError("paymentRef")
	}

	if o.paymentRef != nil {
		if *o.paymentRef == paymentRef {
			return false, nil
		}
		return false, errs.NewConflictErrorWithCause(
			"paymentRef",
			errors.New("a different payment reference is already attached"),
		)
	}

	if err := o.TransitionTo(PaymentPending, now); err != nil {
		return false, err
	}

	o.paymentRef = &paymentRef
	o.paymentMethod = &paymentMethod
	return true, nil
}
