package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCreateOrderItemIsNotConstructed = errors.New(
		"CreateOrderItem must be created via NewCreateOrderItem constructor",
	)
	ErrContactEmailIsRequired = errors.New("contact email is required")
	ErrItemsAreRequired       = errors.New("at least one item is required")
	ErrQuantityIsInvalid      = errors.New("quantity must be greater than 0")
)

// CreateOrderItem is one requested cart position: a catalog product, its
// declared type, and the number of units.
type CreateOrderItem struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	productType order.LineType
	quantity    int

	guard guard.ConstructorGuard
}

// NewCreateOrderItem creates a cart position request.
// Validates that the product ID and type are valid and the quantity is positive.
func NewCreateOrderItem(productID kernel.UUID, productType order.LineType, quantity int) (CreateOrderItem, error) {
	item := CreateOrderItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setProductType(productType),
		item.setQuantity(quantity),
	); err != nil {
		return CreateOrderItem{}, err
	}

	return item, nil
}

// Validate ensures the item was created through the constructor.
func (i CreateOrderItem) Validate() error {
	return i.guard.Validate(ErrCreateOrderItemIsNotConstructed)
}

// ProductID returns the requested catalog product identifier.
func (i CreateOrderItem) ProductID() kernel.UUID {
	return i.productID
}

// ProductType returns the declared product type of the position.
func (i CreateOrderItem) ProductType() order.LineType {
	return i.productType
}

// Quantity returns the number of requested units.
func (i CreateOrderItem) Quantity() int {
	return i.quantity
}

func (i *CreateOrderItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	i.productID = productID
	return nil
}

func (i *CreateOrderItem) setProductType(productType order.LineType) error {
	if err := productType.Validate(); err != nil {
		return err
	}

	i.productType = productType
	return nil
}

func (i *CreateOrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	i.quantity = quantity
	return nil
}

// CreateOrderCommand represents a request to create a new order from a cart.
// Prices and titles are not part of the request; they are snapshotted from the
// catalog inside the handler so clients cannot influence amounts.
//
// Example:
//
//	item, _ := NewCreateOrderItem(courseID, order.LineTypeCourse, 1)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), buyerID, "jo@example.com", []CreateOrderItem{item})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, buyerProvider, notifier, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	buyerID      kernel.UUID
	contactEmail string
	items        []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that both identifiers are valid, the contact email is present, and
// the cart holds at least one valid item.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	contactEmail string,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setBuyerID(buyerID),
		orderCommand.setContactEmail(contactEmail),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the identifier of the purchasing buyer.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// ContactEmail returns the email receipts and notifications go to.
func (c CreateOrderCommand) ContactEmail() string {
	return c.contactEmail
}

// Items returns the requested cart positions.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setContactEmail(contactEmail string) error {
	if contactEmail == "" {
		return ErrContactEmailIsRequired
	}

	c.contactEmail = contactEmail
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
