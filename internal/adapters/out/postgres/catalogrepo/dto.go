// Package catalogrepo provides data transfer objects and mapping functions for
// catalog persistence. The catalog tables are the source of product snapshots
// at order creation and carry the shared counters mutated at fulfillment time.
package catalogrepo

import (
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CourseDTO represents the database structure for purchasable courses.
type CourseDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title         string
	Price         decimal.Decimal `gorm:"type:decimal(12,2)"`
	Purchasable   bool
	EnrolledCount int
}

// TableName specifies the database table name for course entities.
func (CourseDTO) TableName() string {
	return "courses"
}

// EventDTO represents the database structure for capacity-bounded events.
type EventDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title             string
	Price             decimal.Decimal `gorm:"type:decimal(12,2)"`
	Purchasable       bool
	Capacity          int
	AvailableCapacity int
}

// TableName specifies the database table name for event entities.
func (EventDTO) TableName() string {
	return "events"
}

// DigitalGoodDTO represents the database structure for downloadable products.
type DigitalGoodDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title         string
	Price         decimal.Decimal `gorm:"type:decimal(12,2)"`
	Purchasable   bool
	DownloadCount int
}

// TableName specifies the database table name for digital-good entities.
func (DigitalGoodDTO) TableName() string {
	return "digital_goods"
}

func courseToDomain(dto CourseDTO) (*catalog.Course, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &catalog.Course{
		ID:            id,
		Title:         dto.Title,
		Price:         dto.Price,
		Purchasable:   dto.Purchasable,
		EnrolledCount: dto.EnrolledCount,
	}, nil
}

func eventToDomain(dto EventDTO) (*catalog.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &catalog.Event{
		ID:                id,
		Title:             dto.Title,
		Price:             dto.Price,
		Purchasable:       dto.Purchasable,
		Capacity:          dto.Capacity,
		AvailableCapacity: dto.AvailableCapacity,
	}, nil
}

func digitalGoodToDomain(dto DigitalGoodDTO) (*catalog.DigitalGood, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &catalog.DigitalGood{
		ID:            id,
		Title:         dto.Title,
		Price:         dto.Price,
		Purchasable:   dto.Purchasable,
		DownloadCount: dto.DownloadCount,
	}, nil
}
