package commands

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
	"commerce/internal/core/ports"

	"go.uber.org/zap"
)

// RefundOrderCommandHandler reverses a completed order.
// Every line's access right is revoked through the dispatcher and the order
// moves to "refunded", all in one transaction. Revocation is idempotent per
// line, so a retried refund settles into the same final state.
//
// Download grants are kept as audit records with their sub-status flipped;
// enrollments and bookings are cancelled and their counters released.
//
// Example:
//
//	handler := NewRefundOrderCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewRefundOrderCommand(orderID, "course not as described")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("refund failed: %w", err)
//	}
type RefundOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	dispatcher services.AccessDispatcher
	notifier   statusNotifier
}

// NewRefundOrderCommandHandler creates a handler for order refunds.
// Requires a FulfillmentUoWFactory so order, fulfillment records, and catalog
// counters commit atomically.
func NewRefundOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewAccessDispatcher(),
		notifier:   newStatusNotifier(notifier, logger),
	}
}

// Handle processes the refund command.
// Only completed orders can be refunded; the state machine rejects everything
// else. Revokes each line's grant and persists the "refunded" status.
func (h RefundOrderCommandHandler) Handle(ctx context.Context, cmd RefundOrderCommand) error {
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

	if err = ord.TransitionTo(order.Refunded, time.Now().UTC()); err != nil {
		return err
	}

	stores := services.AccessStores{
		Catalog:     uow.CatalogRepository(),
		Fulfillment: uow.FulfillmentRepository(),
	}
	for _, line := range ord.Lines() {
		if err = h.dispatcher.Revoke(ctx, stores, ord.BuyerID(), line); err != nil {
			return err
		}
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
