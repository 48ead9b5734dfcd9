package ports

import "context"

// OrderNotification describes an order state change for the outbound
// notification side channel.
type OrderNotification struct {
	OrderID      string `json:"order_id"`
	BuyerID      string `json:"buyer_id"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
}

// Notifier delivers order state-change notifications. Delivery is best
// effort: callers log failures and never let them fail or roll back the
// owning order operation.
type Notifier interface {
	// NotifyOrderChanged delivers a state-change notification.
	NotifyOrderChanged(ctx context.Context, notification OrderNotification) error
}
