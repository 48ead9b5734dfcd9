// Package fulfillmentrepo provides data transfer objects and mapping functions
// for fulfillment record persistence. Each table carries a unique index on the
// order line identifier, which is what makes grant insertion idempotent.
package fulfillmentrepo

import (
	"commerce/internal/core/domain/model/fulfillment"
	"commerce/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EnrollmentDTO represents the database structure for course enrollments.
type EnrollmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderLineID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	BuyerID     uuid.UUID `gorm:"type:uuid;index"`
	CourseID    uuid.UUID `gorm:"type:uuid;index"`
	Status      int
}

// TableName specifies the database table name for enrollment records.
func (EnrollmentDTO) TableName() string {
	return "enrollments"
}

// BookingDTO represents the database structure for event bookings.
type BookingDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderLineID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	BuyerID     uuid.UUID `gorm:"type:uuid;index"`
	EventID     uuid.UUID `gorm:"type:uuid;index"`
	Attendees   int
	Status      int
}

// TableName specifies the database table name for booking records.
func (BookingDTO) TableName() string {
	return "bookings"
}

// DownloadGrantDTO represents the database structure for download grants.
type DownloadGrantDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderLineID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	BuyerID           uuid.UUID `gorm:"type:uuid;index"`
	ProductID         uuid.UUID `gorm:"type:uuid;index"`
	ConsumedDownloads int
	Status            int
}

// TableName specifies the database table name for download-grant records.
func (DownloadGrantDTO) TableName() string {
	return "download_grants"
}

func enrollmentFromDomain(record *fulfillment.Enrollment) EnrollmentDTO {
	return EnrollmentDTO{
		ID:          record.ID().Bytes(),
		OrderLineID: record.OrderLineID().Bytes(),
		BuyerID:     record.BuyerID().Bytes(),
		CourseID:    record.CourseID().Bytes(),
		Status:      int(record.Status()),
	}
}

func enrollmentToDomain(dto EnrollmentDTO) (*fulfillment.Enrollment, error) {
	ids, err := restoreIDs(dto.ID, dto.OrderLineID, dto.BuyerID, dto.CourseID)
	if err != nil {
		return nil, err
	}

	return fulfillment.RestoreEnrollment(ids[0], ids[1], ids[2], ids[3], fulfillment.EnrollmentStatus(dto.Status))
}

func bookingFromDomain(record *fulfillment.Booking) BookingDTO {
	return BookingDTO{
		ID:          record.ID().Bytes(),
		OrderLineID: record.OrderLineID().Bytes(),
		BuyerID:     record.BuyerID().Bytes(),
		EventID:     record.EventID().Bytes(),
		Attendees:   record.Attendees(),
		Status:      int(record.Status()),
	}
}

func bookingToDomain(dto BookingDTO) (*fulfillment.Booking, error) {
	ids, err := restoreIDs(dto.ID, dto.OrderLineID, dto.BuyerID, dto.EventID)
	if err != nil {
		return nil, err
	}

	return fulfillment.RestoreBooking(ids[0], ids[1], ids[2], ids[3], dto.Attendees, fulfillment.BookingStatus(dto.Status))
}

func downloadGrantFromDomain(record *fulfillment.DownloadGrant) DownloadGrantDTO {
	return DownloadGrantDTO{
		ID:                record.ID().Bytes(),
		OrderLineID:       record.OrderLineID().Bytes(),
		BuyerID:           record.BuyerID().Bytes(),
		ProductID:         record.ProductID().Bytes(),
		ConsumedDownloads: record.ConsumedDownloads(),
		Status:            int(record.Status()),
	}
}

func downloadGrantToDomain(dto DownloadGrantDTO) (*fulfillment.DownloadGrant, error) {
	ids, err := restoreIDs(dto.ID, dto.OrderLineID, dto.BuyerID, dto.ProductID)
	if err != nil {
		return nil, err
	}

	return fulfillment.RestoreDownloadGrant(ids[0], ids[1], ids[2], ids[3], dto.ConsumedDownloads, fulfillment.GrantStatus(dto.Status))
}

func restoreIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
