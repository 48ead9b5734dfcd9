// Package notify provides outbound adapters for the order notification side
// channel. Delivery is best effort: callers log failures and never let them
// fail the owning order operation.
package notify

import (
	"context"
	"fmt"
	"time"

	"commerce/internal/core/ports"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier delivers order notifications as JSON POSTs to a configured
// webhook endpoint.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier creates a notifier posting to the given URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2)

	return &WebhookNotifier{
		client: client,
		url:    url,
	}
}

// NotifyOrderChanged posts the notification to the webhook endpoint.
func (n *WebhookNotifier) NotifyOrderChanged(ctx context.Context, notification ports.OrderNotification) error {
	response, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(notification).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post order notification: %w", err)
	}

	if response.IsError() {
		return fmt.Errorf("order notification rejected with status %d", response.StatusCode())
	}

	return nil
}
