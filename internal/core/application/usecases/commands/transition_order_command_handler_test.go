package commands_test

import (
	"testing"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := testOrderInStatus(t, order.PaymentPending, testLine(t, order.LineTypeCourse, 1, "50.00"))
	cmd, _ := commands.NewTransitionOrderCommand(ord.ID(), order.Paid)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(orderRepo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("NotifyOrderChanged", ctx, mock.MatchedBy(func(n ports.OrderNotification) bool {
		return n.Status == "paid"
	})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, notifier, zap.NewNop())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, ord.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	ord := testOrder(t, testLine(t, order.LineTypeCourse, 1, "50.00")) // pending
	cmd, _ := commands.NewTransitionOrderCommand(ord.ID(), order.Completed)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, nil, zap.NewNop())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Pending, ord.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TransitionOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewTransitionOrderCommandHandler(factory, nil, zap.NewNop())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
