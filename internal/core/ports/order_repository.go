package ports

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities.
type OrderRepository interface {
	// Add persists a new order aggregate with all its lines in one statement
	// batch. The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists header changes (status, payment reference, timestamps)
	// of an existing order. Lines are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its lines by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStalePending retrieves orders still in Pending status whose creation
	// time is before the cutoff. Used by the expiry job.
	GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// OutstandingEventDemand sums the line quantities for the given event
	// across orders that are neither cancelled nor refunded nor completed.
	// Used to bound creation-time acceptance against event capacity.
	OutstandingEventDemand(ctx context.Context, eventID kernel.UUID) (int, error)
}
