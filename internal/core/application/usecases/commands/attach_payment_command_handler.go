package commands

import (
	"context"
	"time"

	"commerce/internal/core/ports"

	"go.uber.org/zap"
)

// AttachPaymentCommandHandler records an external payment against an order and
// moves it to "payment_pending".
//
// The operation is idempotent on the payment reference: re-attaching the same
// reference succeeds without changing anything, while a different reference on
// an already-paid-for order is rejected as a conflict.
//
// Example:
//
//	handler := NewAttachPaymentCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewAttachPaymentCommand(orderID, "psp_8231", "card")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("payment attach failed: %w", err)
//	}
type AttachPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   statusNotifier
}

// NewAttachPaymentCommandHandler creates a handler for payment attachment.
func NewAttachPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) AttachPaymentCommandHandler {
	return AttachPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   newStatusNotifier(notifier, logger),
	}
}

// Handle processes the payment attachment command.
// Loads the order, attaches the reference through the aggregate, and persists
// the change. A repeated reference commits nothing and sends no notification.
func (h AttachPaymentCommandHandler) Handle(ctx context.Context, cmd AttachPaymentCommand) error {
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

	changed, err := ord.AttachPayment(cmd.PaymentRef(), cmd.PaymentMethod(), time.Now().UTC())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ord, "")
	return nil
}
