package dto

import (
	"strings"

	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/validation"
)

// PersonInput carries the person-identifying fields shared by student,
// teacher and guardian creation. At least one of CPF/email must be present;
// Normalize enforces that and strips formatting before the reconciliation
// core ever sees the values.
type PersonInput struct {
	FullName string  `json:"fullName" binding:"required,max=255"`
	CPF      *string `json:"cpf,omitempty" binding:"omitempty,max=14"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Active   *bool   `json:"active,omitempty"`
}

// Normalize strips CPF/phone formatting, validates the CPF check digits and
// enforces the cpf-or-email requirement. Returns a field-attributed
// validation error on failure.
func (p *PersonInput) Normalize() error {
	if p.CPF != nil {
		cpf := validation.NormalizeCPF(*p.CPF)
		if cpf == "" {
			p.CPF = nil
		} else {
			if !validation.IsValidCPF(cpf) {
				return apperrors.NewValidationError(apperrors.ErrValidationFailed,
					"cpf", "cpf must be a valid 11-digit CPF")
			}
			p.CPF = &cpf
		}
	}

	if p.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*p.Email))
		if email == "" {
			p.Email = nil
		} else {
			p.Email = &email
		}
	}

	if p.Phone != nil {
		phone := validation.NormalizePhone(*p.Phone)
		if phone == "" {
			p.Phone = nil
		} else {
			p.Phone = &phone
		}
	}

	if p.CPF == nil && p.Email == nil {
		return apperrors.NewValidationError(apperrors.ErrValidationFailed,
			"cpf", "provide a CPF or an email",
			"email", "provide a CPF or an email")
	}

	return nil
}
