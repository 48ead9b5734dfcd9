package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var ErrRefundOrderCommandIsNotConstructed = errors.New(
	"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
)

// RefundOrderCommand represents a request to refund a completed order and
// revoke everything it granted. The reason is carried on the outgoing
// notification only; it is not persisted.
type RefundOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRefundOrderCommand creates a command to refund an order.
// The reason may be empty.
func NewRefundOrderCommand(orderID kernel.UUID, reason string) (RefundOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RefundOrderCommand{}, err
	}

	return RefundOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

// OrderID returns the order to refund.
func (c RefundOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the optional refund reason.
func (c RefundOrderCommand) Reason() string {
	return c.reason
}
