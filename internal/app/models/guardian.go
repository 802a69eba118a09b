package models

import (
	"time"

	"github.com/google/uuid"
)

// Guardian defines the school-scoped guardianship profile, based on the
// 'guardians' table. A guardian links to zero or more students of the same
// school through the 'guardian_students' join table.
type Guardian struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	SchoolID     uuid.UUID  `json:"schoolId" db:"school_id"`
	IdentityID   uuid.UUID  `json:"identityId" db:"identity_id"`
	Relationship *string    `json:"relationship,omitempty" db:"relationship"` // "mother", "father", "legal guardian"
	Profession   *string    `json:"profession,omitempty" db:"profession"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`

	// Relations (populated when needed)
	Identity *Identity  `json:"identity,omitempty"`
	Students []*Student `json:"students,omitempty"`
}
