package commands

import (
	"context"
	"time"

	"commerce/internal/core/ports"

	"go.uber.org/zap"
)

// TransitionOrderCommandHandler applies a direct status transition to an order.
// The aggregate's transition table is the single authority on what is allowed;
// an illegal move surfaces as a validation error naming both statuses.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewTransitionOrderCommand(orderID, order.Paid)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   statusNotifier
}

// NewTransitionOrderCommandHandler creates a handler for direct order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newStatusNotifier(notifier, logger),
	}
}

// Handle processes the transition command.
// Loads the order, applies the transition through the state machine, and
// persists the new status within a transaction.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	if err = ord.TransitionTo(cmd.Target(), time.Now().UTC()); err != nil {
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
