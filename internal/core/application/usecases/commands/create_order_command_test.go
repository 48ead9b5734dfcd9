package commands_test

import (
	"testing"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem(t *testing.T) commands.CreateOrderItem {
	t.Helper()
	item, err := commands.NewCreateOrderItem(kernel.NewUUID(), order.LineTypeCourse, 1)
	require.NoError(t, err)
	return item
}

func TestNewCreateOrderItem_ValidInput(t *testing.T) {
	productID := kernel.NewUUID()
	item, err := commands.NewCreateOrderItem(productID, order.LineTypeEvent, 3)
	require.NoError(t, err)
	assert.Equal(t, productID, item.ProductID())
	assert.Equal(t, order.LineTypeEvent, item.ProductType())
	assert.Equal(t, 3, item.Quantity())
}

func TestNewCreateOrderItem_InvalidQuantity(t *testing.T) {
	_, err := commands.NewCreateOrderItem(kernel.NewUUID(), order.LineTypeCourse, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrQuantityIsInvalid)
}

func TestNewCreateOrderItem_InvalidProductType(t *testing.T) {
	_, err := commands.NewCreateOrderItem(kernel.NewUUID(), order.LineTypeUnknown, 1)
	require.Error(t, err)
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	buyerID := kernel.NewUUID()
	items := []commands.CreateOrderItem{validItem(t)}

	cmd, err := commands.NewCreateOrderCommand(orderID, buyerID, "jo@example.com", items)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, buyerID, cmd.BuyerID())
	assert.Equal(t, "jo@example.com", cmd.ContactEmail())
	assert.Len(t, cmd.Items(), 1)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.UUID{}, kernel.NewUUID(), "jo@example.com", []commands.CreateOrderItem{validItem(t)},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyContactEmail(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "", []commands.CreateOrderItem{validItem(t)},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrContactEmailIsRequired)
}

func TestNewCreateOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "jo@example.com", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestNewCreateOrderCommand_NotConstructedItem(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "jo@example.com", []commands.CreateOrderItem{{}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderItemIsNotConstructed)
}
