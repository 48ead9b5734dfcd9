package fulfillmentrepo

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/fulfillment"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFulfillmentRepository implements FulfillmentRepository using GORM.
//
// Add methods insert with ON CONFLICT (order_line_id) DO NOTHING and report
// whether a row was created, so granting the same line twice is a no-op that
// the caller can detect without a prior read.
type GormFulfillmentRepository struct {
	db *gorm.DB
}

// NewGormFulfillmentRepository creates a new GORM fulfillment repository.
func NewGormFulfillmentRepository(db *gorm.DB) *GormFulfillmentRepository {
	return &GormFulfillmentRepository{db: db}
}

var lineConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "order_line_id"}},
	DoNothing: true,
}

// AddEnrollment inserts the enrollment unless one already exists for its
// order line. Returns true when a row was created.
func (r *GormFulfillmentRepository) AddEnrollment(ctx context.Context, record *fulfillment.Enrollment) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	dto := enrollmentFromDomain(record)
	result := r.db.WithContext(ctx).Clauses(lineConflict).Create(&dto)
	if result.Error != nil {
		return false, errs.NewDatabaseError("create enrollment", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetEnrollmentByLine retrieves the enrollment granted for an order line.
func (r *GormFulfillmentRepository) GetEnrollmentByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.Enrollment, error) {
	if err := orderLineID.Validate(); err != nil {
		return nil, err
	}

	var dto EnrollmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_line_id = ?", orderLineID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("enrollment", orderLineID.String())
		}
		return nil, errs.NewDatabaseError("get enrollment", err)
	}

	return enrollmentToDomain(dto)
}

// UpdateEnrollment persists sub-status changes of an existing enrollment.
func (r *GormFulfillmentRepository) UpdateEnrollment(ctx context.Context, record *fulfillment.Enrollment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	return r.updateStatus(ctx, &EnrollmentDTO{}, "enrollment", record.ID(), map[string]any{
		"status": int(record.Status()),
	})
}

// AddBooking inserts the booking unless one already exists for its order
// line. Returns true when a row was created.
func (r *GormFulfillmentRepository) AddBooking(ctx context.Context, record *fulfillment.Booking) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	dto := bookingFromDomain(record)
	result := r.db.WithContext(ctx).Clauses(lineConflict).Create(&dto)
	if result.Error != nil {
		return false, errs.NewDatabaseError("create booking", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetBookingByLine retrieves the booking granted for an order line.
func (r *GormFulfillmentRepository) GetBookingByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.Booking, error) {
	if err := orderLineID.Validate(); err != nil {
		return nil, err
	}

	var dto BookingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_line_id = ?", orderLineID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("booking", orderLineID.String())
		}
		return nil, errs.NewDatabaseError("get booking", err)
	}

	return bookingToDomain(dto)
}

// UpdateBooking persists sub-status changes of an existing booking.
func (r *GormFulfillmentRepository) UpdateBooking(ctx context.Context, record *fulfillment.Booking) error {
	if err := record.Validate(); err != nil {
		return err
	}

	return r.updateStatus(ctx, &BookingDTO{}, "booking", record.ID(), map[string]any{
		"status": int(record.Status()),
	})
}

// AddDownloadGrant inserts the grant unless one already exists for its order
// line. Returns true when a row was created.
func (r *GormFulfillmentRepository) AddDownloadGrant(ctx context.Context, record *fulfillment.DownloadGrant) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	dto := downloadGrantFromDomain(record)
	result := r.db.WithContext(ctx).Clauses(lineConflict).Create(&dto)
	if result.Error != nil {
		return false, errs.NewDatabaseError("create download grant", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetDownloadGrantByLine retrieves the grant issued for an order line.
func (r *GormFulfillmentRepository) GetDownloadGrantByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.DownloadGrant, error) {
	if err := orderLineID.Validate(); err != nil {
		return nil, err
	}

	var dto DownloadGrantDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_line_id = ?", orderLineID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("download grant", orderLineID.String())
		}
		return nil, errs.NewDatabaseError("get download grant", err)
	}

	return downloadGrantToDomain(dto)
}

// UpdateDownloadGrant persists sub-status and consumption changes of an
// existing grant.
func (r *GormFulfillmentRepository) UpdateDownloadGrant(ctx context.Context, record *fulfillment.DownloadGrant) error {
	if err := record.Validate(); err != nil {
		return err
	}

	return r.updateStatus(ctx, &DownloadGrantDTO{}, "download grant", record.ID(), map[string]any{
		"status":             int(record.Status()),
		"consumed_downloads": record.ConsumedDownloads(),
	})
}

func (r *GormFulfillmentRepository) updateStatus(
	ctx context.Context,
	model any,
	objectName string,
	id kernel.UUID,
	columns map[string]any,
) error {
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id.Bytes()).
		Updates(columns)
	if result.Error != nil {
		return errs.NewDatabaseError("update "+objectName, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(objectName, id.String())
	}

	return nil
}
