package buyerrepo

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBuyerRepository implements BuyerProvider using GORM.
type GormBuyerRepository struct {
	db *gorm.DB
}

// NewGormBuyerRepository creates a new GORM buyer repository.
func NewGormBuyerRepository(db *gorm.DB) *GormBuyerRepository {
	return &GormBuyerRepository{db: db}
}

// BuyerExists reports whether a buyer with the given identifier exists.
func (r *GormBuyerRepository) BuyerExists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&BuyerDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, errs.NewDatabaseError("count buyers", err)
	}

	return count > 0, nil
}
