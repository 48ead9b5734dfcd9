package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes order notifications to a Kafka topic, keyed by
// order identifier so all events of one order land in the same partition.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier creates a notifier publishing to the given broker and topic.
func NewKafkaNotifier(broker, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// NotifyOrderChanged publishes the notification.
func (n *KafkaNotifier) NotifyOrderChanged(ctx context.Context, notification ports.OrderNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal order notification: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish order notification: %w", err)
	}

	return nil
}

// Close releases the underlying Kafka writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
