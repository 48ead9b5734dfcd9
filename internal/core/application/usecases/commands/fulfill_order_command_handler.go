package commands

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
	"commerce/internal/core/ports"

	"go.uber.org/zap"
)

// FulfillOrderCommandHandler turns a paid order into granted access rights.
// The order moves paid -> processing -> completed and every line's grant lands
// in the same transaction, so a failure on any line rolls the whole batch back
// and leaves the order in "paid" for a retry.
//
// Fulfilling an already-completed order is a no-op success: the grants are
// insert-if-absent, so a crash between commit and acknowledgement cannot
// double-grant on retry.
//
// Example:
//
//	handler := NewFulfillOrderCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewFulfillOrderCommand(orderID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("fulfillment failed: %w", err)
//	}
type FulfillOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	dispatcher services.AccessDispatcher
	notifier   statusNotifier
}

// NewFulfillOrderCommandHandler creates a handler for order fulfillment.
// Requires a FulfillmentUoWFactory so order, fulfillment records, and catalog
// counters commit atomically.
func NewFulfillOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) FulfillOrderCommandHandler {
	return FulfillOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewAccessDispatcher(),
		notifier:   newStatusNotifier(notifier, logger),
	}
}

// Handle processes the fulfillment command.
// Grants one access right per order line through the dispatcher and completes
// the order. Only orders in "paid" status are eligible; "completed" returns
// success without doing anything.
func (h FulfillOrderCommandHandler) Handle(ctx context.Context, cmd FulfillOrderCommand) error {
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

	if ord.Status() == order.Completed {
		return nil
	}

	now := time.Now().UTC()
	if err = ord.TransitionTo(order.Processing, now); err != nil {
		return err
	}

	stores := services.AccessStores{
		Catalog:     uow.CatalogRepository(),
		Fulfillment: uow.FulfillmentRepository(),
	}
	for _, line := range ord.Lines() {
		if err = h.dispatcher.Grant(ctx, stores, ord.BuyerID(), line); err != nil {
			return err
		}
	}

	if err = ord.TransitionTo(order.Completed, now); err != nil {
		return err
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
