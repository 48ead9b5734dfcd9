package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"

	"go.uber.org/zap"
)

// statusNotifier publishes order status changes after the owning transaction
// has committed. Delivery is best effort: a failed notification is logged and
// never propagated, so a committed state change is never reported as an error.
type statusNotifier struct {
	notifier ports.Notifier
	logger   *zap.Logger
}

func newStatusNotifier(notifier ports.Notifier, logger *zap.Logger) statusNotifier {
	return statusNotifier{notifier: notifier, logger: logger}
}

// notify sends the order's current status to the configured channel.
// Reason is optional and only carried for cancellations and refunds.
func (n statusNotifier) notify(ctx context.Context, ord *order.Order, reason string) {
	if n.notifier == nil {
		return
	}

	notification := ports.OrderNotification{
		OrderID:      ord.ID().String(),
		BuyerID:      ord.BuyerID().String(),
		ContactEmail: ord.ContactEmail(),
		Status:       ord.Status().String(),
		Reason:       reason,
	}

	if err := n.notifier.NotifyOrderChanged(ctx, notification); err != nil {
		n.logger.Warn("order notification failed",
			zap.String("order_id", notification.OrderID),
			zap.String("status", notification.Status),
			zap.Error(err),
		)
	}
}
