package catalog

import (
	"commerce/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Course is a point-in-time snapshot of a purchasable course.
type Course struct {
	ID            kernel.UUID
	Title         string
	Price         decimal.Decimal
	Purchasable   bool
	EnrolledCount int
}

// Event is a point-in-time snapshot of a capacity-bounded event.
// AvailableCapacity is always within [0, Capacity].
type Event struct {
	ID                kernel.UUID
	Title             string
	Price             decimal.Decimal
	Purchasable       bool
	Capacity          int
	AvailableCapacity int
}

// DigitalGood is a point-in-time snapshot of a downloadable product.
type DigitalGood struct {
	ID            kernel.UUID
	Title         string
	Price         decimal.Decimal
	Purchasable   bool
	DownloadCount int
}
