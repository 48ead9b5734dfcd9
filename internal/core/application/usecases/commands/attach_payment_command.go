package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrAttachPaymentCommandIsNotConstructed = errors.New(
		"AttachPaymentCommand must be created via NewAttachPaymentCommand constructor",
	)
	ErrPaymentRefIsRequired    = errors.New("payment reference is required")
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// AttachPaymentCommand represents a request to record an external payment
// against an order. Retried webhooks carry the same reference and are
// absorbed idempotently by the handler.
type AttachPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentRef    string
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewAttachPaymentCommand creates a command to attach a payment reference.
// Validates that the order ID is valid and both reference and method are present.
func NewAttachPaymentCommand(orderID kernel.UUID, paymentRef, paymentMethod string) (AttachPaymentCommand, error) {
	command := AttachPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPaymentRef(paymentRef),
		command.setPaymentMethod(paymentMethod),
	); err != nil {
		return AttachPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAttachPaymentCommandIsNotConstructed)
}

// OrderID returns the order the payment belongs to.
func (c AttachPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentRef returns the external payment provider reference.
func (c AttachPaymentCommand) PaymentRef() string {
	return c.paymentRef
}

// PaymentMethod returns the payment method label.
func (c AttachPaymentCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *AttachPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AttachPaymentCommand) setPaymentRef(paymentRef string) error {
	if paymentRef == "" {
		return ErrPaymentRefIsRequired
	}

	c.paymentRef = paymentRef
	return nil
}

func (c *AttachPaymentCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentMethod = paymentMethod
	return nil
}
