package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity defines a person record shared across schools, based on the
// 'identities' table. One identity can hold different profiles at different
// schools (teacher at one, guardian at another).
type Identity struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FullName     string     `json:"fullName" db:"full_name"`
	CPF          *string    `json:"cpf,omitempty" db:"cpf"`     // 11 digits, unique when present
	Email        *string    `json:"email,omitempty" db:"email"` // unique when present
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Active       bool       `json:"active" db:"active"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

// CPFValue returns the CPF digits or "" when unset.
func (i *Identity) CPFValue() string {
	if i.CPF == nil {
		return ""
	}
	return *i.CPF
}

// EmailValue returns the email or "" when unset.
func (i *Identity) EmailValue() string {
	if i.Email == nil {
		return ""
	}
	return *i.Email
}
