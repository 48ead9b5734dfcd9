package commands

import (
	"context"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"go.uber.org/zap"
)

// CancelOrderCommandHandler cancels an order on the buyer's behalf.
// Buyer cancellation is only open while nothing has been settled: orders in
// "pending" or "payment_pending". Later statuses must go through the refund
// flow or an explicit administrative transition.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewCancelOrderCommand(orderID, "changed my mind")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("cancellation failed: %w", err)
//	}
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   statusNotifier
}

// NewCancelOrderCommandHandler creates a handler for buyer cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newStatusNotifier(notifier, logger),
	}
}

// Handle processes the cancellation command.
// Rejects orders that already progressed past "payment_pending", otherwise
// moves the order to "cancelled" and notifies with the given reason.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if ord.Status() != order.Pending && ord.Status() != order.PaymentPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("order in status %s can no longer be cancelled by the buyer", ord.Status()),
		)
	}

	if err = ord.TransitionTo(order.Cancelled, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ord, cmd.Reason())
	return nil
}
