package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var ErrFulfillOrderCommandIsNotConstructed = errors.New(
	"FulfillOrderCommand must be created via NewFulfillOrderCommand constructor",
)

// FulfillOrderCommand represents a request to grant the access rights a paid
// order entitles its buyer to.
type FulfillOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFulfillOrderCommand creates a command to fulfill a paid order.
func NewFulfillOrderCommand(orderID kernel.UUID) (FulfillOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FulfillOrderCommand{}, err
	}

	return FulfillOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FulfillOrderCommand) Validate() error {
	return c.guard.Validate(ErrFulfillOrderCommandIsNotConstructed)
}

// OrderID returns the order to fulfill.
func (c FulfillOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
