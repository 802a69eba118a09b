package models

import (
	"time"

	"github.com/google/uuid"
)

// School defines a tenant, based on the 'schools' table. All student,
// teacher, guardian and class records are scoped by school id.
type School struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Document  *string    `json:"document,omitempty" db:"document"` // CNPJ digits, unique when present
	Phone     *string    `json:"phone,omitempty" db:"phone"`
	Active    bool       `json:"active" db:"active"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}
