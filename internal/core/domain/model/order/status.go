package order

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit transition table to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> PaymentPending ──> Paid ──> Processing ──> Completed ──> Refunded
//	   │              │              │           │
//	   └──────────────┴──────────────┴───────────┴──> Cancelled
//
// Completed (absent a refund), Cancelled, and Refunded are terminal.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// No payment reference is attached and no access has been granted.
	Pending

	// PaymentPending indicates an externally-verified payment reference
	// has been attached and confirmation of the charge is awaited.
	PaymentPending

	// Paid indicates payment has been confirmed. The order is eligible
	// for fulfillment.
	Paid

	// Processing indicates fulfillment is in progress. This status is
	// only observable inside the fulfillment transaction.
	Processing

	// Completed indicates all access rights have been granted.
	// Terminal unless the order is refunded.
	Completed

	// Cancelled indicates the order was abandoned before any access was
	// granted. Terminal.
	Cancelled

	// Refunded indicates a completed order had all its grants reversed.
	// Terminal.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		PaymentPending: "payment_pending",
		Paid:           "paid",
		Processing:     "processing",
		Completed:      "completed",
		Cancelled:      "cancelled",
		Refunded:       "refunded",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		PaymentPending: "payment_pending",
		Paid:           "paid",
		Processing:     "processing",
		Completed:      "completed",
		Cancelled:      "cancelled",
		Refunded:       "refunded",
	}
}

// transitions declares the full adjacency list of the order state machine.
// A transition is allowed only if the target appears in the source's list.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {PaymentPending, Cancelled},
		PaymentPending: {Paid, Cancelled},
		Paid:           {Processing, Cancelled},
		Processing:     {Completed, Cancelled},
		Completed:      {Refunded},
		Cancelled:      {},
		Refunded:       {},
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, PaymentPending, Paid, Processing, Completed,
// Cancelled, Refunded. Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a status name as produced by String.
// Returns an error for unrecognized names, including "unknown".
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status name", name),
	)
}

// CanTransitionTo reports whether the declared transition table permits
// moving from the current status to target. It has no side effects.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from the status.
// Cancelled and Refunded are terminal; Completed can still move to Refunded.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// Transition validates the move against the declared transition table and
// returns the new status.
//
// Returns:
//   - (target, nil) when the transition is present in the table
//   - (0, error) naming the attempted (from, to) pair otherwise
//
// A disallowed pair never mutates anything; callers keep their current status.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("transition from %s to %s is not allowed", s.String(), target.String()),
		)
	}

	return target, nil
}
