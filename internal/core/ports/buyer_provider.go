package ports

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
)

// BuyerProvider supplies buyer identity lookups. Identity itself is owned by
// an external provider; the order core only needs to know whether a referenced
// buyer exists before accepting an order.
type BuyerProvider interface {
	// BuyerExists reports whether a buyer with the given identifier exists.
	BuyerExists(ctx context.Context, id kernel.UUID) (bool, error)
}
