// Package buyerrepo provides buyer existence lookups against the buyers table.
// The order core never owns buyer identity; it only needs to confirm that a
// referenced buyer exists before accepting an order.
package buyerrepo

import (
	"time"

	"github.com/google/uuid"
)

// BuyerDTO represents the database structure for registered buyers.
type BuyerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	CreatedAt time.Time
}

// TableName specifies the database table name for buyer entities.
func (BuyerDTO) TableName() string {
	return "buyers"
}
