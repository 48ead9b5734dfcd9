package ports

import (
	"context"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
)

// CatalogRepository reads catalog snapshots and mutates the three shared
// counter families: course enrollment counts, event available capacity, and
// digital-good download counts.
//
// Counter mutations are single conditional UPDATE statements executed inside
// the owning transaction; capacity can never go below zero or above the
// event's total, and the count counters never go negative. Values are never
// read, modified in application memory, and written back.
type CatalogRepository interface {
	// GetCourse retrieves a course snapshot by identifier.
	GetCourse(ctx context.Context, id kernel.UUID) (*catalog.Course, error)

	// GetEvent retrieves an event snapshot by identifier.
	GetEvent(ctx context.Context, id kernel.UUID) (*catalog.Event, error)

	// GetEventForUpdate retrieves an event snapshot and locks its row for the
	// remainder of the transaction, serializing concurrent capacity checks.
	GetEventForUpdate(ctx context.Context, id kernel.UUID) (*catalog.Event, error)

	// GetDigitalGood retrieves a digital-good snapshot by identifier.
	GetDigitalGood(ctx context.Context, id kernel.UUID) (*catalog.DigitalGood, error)

	// IncrementCourseEnrollment atomically adds one to the course's
	// enrollment counter.
	IncrementCourseEnrollment(ctx context.Context, id kernel.UUID) error

	// DecrementCourseEnrollment atomically subtracts one from the course's
	// enrollment counter, floored at zero.
	DecrementCourseEnrollment(ctx context.Context, id kernel.UUID) error

	// ReserveEventCapacity atomically decrements the event's available
	// capacity by quantity. Returns a conflict error when the remaining
	// capacity is insufficient; the counter is left untouched in that case.
	ReserveEventCapacity(ctx context.Context, id kernel.UUID, quantity int) error

	// ReleaseEventCapacity atomically increments the event's available
	// capacity by quantity, capped at the event's total capacity.
	ReleaseEventCapacity(ctx context.Context, id kernel.UUID, quantity int) error

	// IncrementDownloadCount atomically adds one to the product's download
	// counter.
	IncrementDownloadCount(ctx context.Context, id kernel.UUID) error

	// DecrementDownloadCount atomically subtracts one from the product's
	// download counter, floored at zero.
	DecrementDownloadCount(ctx context.Context, id kernel.UUID) error
}
