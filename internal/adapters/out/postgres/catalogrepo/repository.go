package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements CatalogRepository using GORM.
//
// Counter mutations are single conditional UPDATE statements so that
// concurrent fulfillments never lose increments and capacity can never be
// oversold. Values are never read, modified in memory, and written back.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetCourse retrieves a course snapshot by ID.
func (r *GormCatalogRepository) GetCourse(ctx context.Context, id kernel.UUID) (*catalog.Course, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("course", id.String())
		}
		return nil, errs.NewDatabaseError("get course", err)
	}

	return courseToDomain(dto)
}

// GetEvent retrieves an event snapshot by ID.
func (r *GormCatalogRepository) GetEvent(ctx context.Context, id kernel.UUID) (*catalog.Event, error) {
	return r.getEvent(ctx, id, false)
}

// GetEventForUpdate retrieves an event snapshot and locks its row for the
// remainder of the transaction, serializing concurrent capacity checks.
func (r *GormCatalogRepository) GetEventForUpdate(ctx context.Context, id kernel.UUID) (*catalog.Event, error) {
	return r.getEvent(ctx, id, true)
}

func (r *GormCatalogRepository) getEvent(ctx context.Context, id kernel.UUID, lock bool) (*catalog.Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto EventDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("event", id.String())
		}
		return nil, errs.NewDatabaseError("get event", err)
	}

	return eventToDomain(dto)
}

// GetDigitalGood retrieves a digital-good snapshot by ID.
func (r *GormCatalogRepository) GetDigitalGood(ctx context.Context, id kernel.UUID) (*catalog.DigitalGood, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DigitalGoodDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("digital good", id.String())
		}
		return nil, errs.NewDatabaseError("get digital good", err)
	}

	return digitalGoodToDomain(dto)
}

// IncrementCourseEnrollment atomically adds one to the course's enrollment counter.
func (r *GormCatalogRepository) IncrementCourseEnrollment(ctx context.Context, id kernel.UUID) error {
	return r.adjustCounter(ctx, &CourseDTO{}, "course", id,
		"enrolled_count", gorm.Expr("enrolled_count + 1"))
}

// DecrementCourseEnrollment atomically subtracts one from the course's
// enrollment counter, floored at zero.
func (r *GormCatalogRepository) DecrementCourseEnrollment(ctx context.Context, id kernel.UUID) error {
	return r.adjustCounter(ctx, &CourseDTO{}, "course", id,
		"enrolled_count", gorm.Expr("GREATEST(enrolled_count - 1, 0)"))
}

// ReserveEventCapacity atomically decrements the event's available capacity.
// The decrement is guarded in SQL: when the remaining capacity is below the
// requested quantity no row is touched and a conflict error is returned.
func (r *GormCatalogRepository) ReserveEventCapacity(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id = ? AND available_capacity >= ?", id.Bytes(), quantity).
		UpdateColumn("available_capacity", gorm.Expr("available_capacity - ?", quantity))
	if result.Error != nil {
		return errs.NewDatabaseError("reserve event capacity", result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing event from insufficient capacity.
		event, err := r.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		return errs.NewConflictErrorWithCause(
			"event capacity",
			fmt.Errorf("requested %d seats, %d available", quantity, event.AvailableCapacity),
		)
	}

	return nil
}

// ReleaseEventCapacity atomically increments the event's available capacity,
// capped at the event's total capacity.
func (r *GormCatalogRepository) ReleaseEventCapacity(ctx context.Context, id kernel.UUID, quantity int) error {
	return r.adjustCounter(ctx, &EventDTO{}, "event", id,
		"available_capacity", gorm.Expr("LEAST(available_capacity + ?, capacity)", quantity))
}

// IncrementDownloadCount atomically adds one to the product's download counter.
func (r *GormCatalogRepository) IncrementDownloadCount(ctx context.Context, id kernel.UUID) error {
	return r.adjustCounter(ctx, &DigitalGoodDTO{}, "digital good", id,
		"download_count", gorm.Expr("download_count + 1"))
}

// DecrementDownloadCount atomically subtracts one from the product's download
// counter, floored at zero.
func (r *GormCatalogRepository) DecrementDownloadCount(ctx context.Context, id kernel.UUID) error {
	return r.adjustCounter(ctx, &DigitalGoodDTO{}, "digital good", id,
		"download_count", gorm.Expr("GREATEST(download_count - 1, 0)"))
}

func (r *GormCatalogRepository) adjustCounter(
	ctx context.Context,
	model any,
	objectName string,
	id kernel.UUID,
	column string,
	expr clause.Expr,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id.Bytes()).
		UpdateColumn(column, expr)
	if result.Error != nil {
		return errs.NewDatabaseError("update "+objectName+" counter", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(objectName, id.String())
	}

	return nil
}
