package fulfillment

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
)

// ErrEnrollmentIsNotConstructed is returned when an Enrollment was not created
// through NewEnrollment or RestoreEnrollment.
var ErrEnrollmentIsNotConstructed = errors.New("Enrollment must be created via NewEnrollment constructor")

// EnrollmentStatus is the sub-status of a course enrollment.
type EnrollmentStatus int

const (
	// EnrollmentStatusUnknown represents an invalid or undefined sub-status.
	EnrollmentStatusUnknown EnrollmentStatus = iota

	// Enrolled means the buyer holds active course access.
	Enrolled

	// EnrollmentCancelled means the enrollment was reversed by a refund.
	EnrollmentCancelled
)

// Enrollment records course access granted for a single order line.
type Enrollment struct {
	id          kernel.UUID
	orderLineID kernel.UUID
	buyerID     kernel.UUID
	courseID    kernel.UUID
	status      EnrollmentStatus

	guard kernel.ConstructorGuard
}

// NewEnrollment creates an active enrollment for the given order line.
func NewEnrollment(id, orderLineID, buyerID, courseID kernel.UUID) (*Enrollment, error) {
	if err := errors.Join(
		id.Validate(),
		orderLineID.Validate(),
		buyerID.Validate(),
		courseID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Enrollment{
		id:          id,
		orderLineID: orderLineID,
		buyerID:     buyerID,
		courseID:    courseID,
		status:      Enrolled,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreEnrollment reconstructs an enrollment from persistence.
func RestoreEnrollment(id, orderLineID, buyerID, courseID kernel.UUID, status EnrollmentStatus) (*Enrollment, error) {
	enrollment, err := NewEnrollment(id, orderLineID, buyerID, courseID)
	if err != nil {
		return nil, err
	}
	enrollment.status = status
	return enrollment, nil
}

// Validate ensures the Enrollment was created via a constructor.
func (e *Enrollment) Validate() error {
	if e == nil {
		return ErrEnrollmentIsNotConstructed
	}
	return e.guard.Validate(ErrEnrollmentIsNotConstructed)
}

// ID returns the enrollment's unique identifier.
func (e *Enrollment) ID() kernel.UUID { return e.id }

// OrderLineID returns the order line this enrollment was granted for.
func (e *Enrollment) OrderLineID() kernel.UUID { return e.orderLineID }

// BuyerID returns the enrolled buyer.
func (e *Enrollment) BuyerID() kernel.UUID { return e.buyerID }

// CourseID returns the course the buyer is enrolled in.
func (e *Enrollment) CourseID() kernel.UUID { return e.courseID }

// Status returns the enrollment sub-status.
func (e *Enrollment) Status() EnrollmentStatus { return e.status }

// Cancel reverses the enrollment. Returns true if the sub-status changed,
// false if the enrollment was already cancelled.
func (e *Enrollment) Cancel() bool {
	if e.status == EnrollmentCancelled {
		return false
	}
	e.status = EnrollmentCancelled
	return true
}
