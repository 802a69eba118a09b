package models

import (
	"time"

	"github.com/google/uuid"
)

// Teacher defines the school-scoped teaching profile, based on the
// 'teachers' table. Subjects are an ordered list in the domain; the
// repository encodes them to a text[] column.
type Teacher struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	SchoolID           uuid.UUID  `json:"schoolId" db:"school_id"`
	IdentityID         uuid.UUID  `json:"identityId" db:"identity_id"`
	RegistrationNumber string     `json:"registrationNumber" db:"registration_number"` // unique within school
	Subjects           []string   `json:"subjects,omitempty" db:"subjects"`
	Specialization     *string    `json:"specialization,omitempty" db:"specialization"`
	Active             bool       `json:"active" db:"active"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt          *time.Time `json:"-" db:"deleted_at"`

	// Relations (populated when needed)
	Identity *Identity `json:"identity,omitempty"`
}
