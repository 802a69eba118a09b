package models

import (
	"time"

	"github.com/google/uuid"
)

// Student defines the school-scoped enrollment profile, based on the
// 'students' table. At most one non-deleted row may exist per
// (school_id, identity_id) pair.
type Student struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	SchoolID         uuid.UUID  `json:"schoolId" db:"school_id"`
	IdentityID       uuid.UUID  `json:"identityId" db:"identity_id"`
	EnrollmentNumber string     `json:"enrollmentNumber" db:"enrollment_number"` // unique within school
	Grade            string     `json:"grade" db:"grade"`
	Section          *string    `json:"section,omitempty" db:"section"`
	BirthDate        *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	EnrolledAt       *time.Time `json:"enrolledAt,omitempty" db:"enrolled_at"`
	MedicalNotes     *string    `json:"medicalNotes,omitempty" db:"medical_notes"`
	Active           bool       `json:"active" db:"active"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt        *time.Time `json:"-" db:"deleted_at"`

	// Relations (populated when needed)
	Identity *Identity `json:"identity,omitempty"`
}
