package commands

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"

	"go.uber.org/zap"
)

// expiryReason is carried on notifications for orders cancelled by the
// payment-window sweep.
const expiryReason = "payment window expired"

// ExpirePendingOrdersCommandHandler cancels orders that never left "pending"
// within the payment window. Invoked periodically by the background job; a
// sweep that finds nothing is a successful no-op.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   statusNotifier
}

// NewExpirePendingOrdersCommandHandler creates a handler for the expiry sweep.
func NewExpirePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *zap.Logger,
) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   newStatusNotifier(notifier, logger),
	}
}

// Handle processes the expiry sweep.
// Cancels every order still pending past the cutoff in one transaction and
// notifies each affected buyer after commit.
func (h ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) error {
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

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()

	stale, err := orderRepo.GetStalePending(ctx, now.Add(-cmd.TTL()))
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	for _, ord := range stale {
		if err = ord.TransitionTo(order.Cancelled, now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, ord); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, ord := range stale {
		h.notifier.notify(ctx, ord, expiryReason)
	}
	return nil
}
