package dto

import (
	"github.com/escolabr/escolar/internal/app/models"
)

// CreateGuardianRequest represents the payload for registering a guardian.
type CreateGuardianRequest struct {
	PersonInput
	Relationship *string `json:"relationship,omitempty" binding:"omitempty,max=50"`
	Profession   *string `json:"profession,omitempty" binding:"omitempty,max=100"`
}

// UpdateGuardianRequest represents the payload for updating a guardian.
type UpdateGuardianRequest = CreateGuardianRequest

// LinkStudentsRequest links a guardian to students of the same school.
type LinkStudentsRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1,dive,uuid"`
}

// GuardianResponse flattens a guardianship profile with its identity fields.
type GuardianResponse struct {
	ID           string            `json:"id"`
	Relationship *string           `json:"relationship,omitempty"`
	Profession   *string           `json:"profession,omitempty"`
	FullName     string            `json:"fullName"`
	CPF          *string           `json:"cpf,omitempty"`
	Email        *string           `json:"email,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Active       bool              `json:"active"`
	Students     []StudentResponse `json:"students,omitempty"`
}

// GuardianListResponse represents a page of guardians.
type GuardianListResponse struct {
	Guardians  []GuardianResponse `json:"guardians"`
	Pagination PaginationInfo     `json:"pagination"`
}

// FromGuardian converts a models.Guardian to a GuardianResponse.
func FromGuardian(guardian *models.Guardian) GuardianResponse {
	if guardian == nil {
		return GuardianResponse{}
	}

	resp := GuardianResponse{
		ID:           guardian.ID.String(),
		Relationship: guardian.Relationship,
		Profession:   guardian.Profession,
	}

	if guardian.Identity != nil {
		resp.FullName = guardian.Identity.FullName
		resp.CPF = guardian.Identity.CPF
		resp.Email = guardian.Identity.Email
		resp.Phone = guardian.Identity.Phone
		resp.Active = guardian.Identity.Active
	}

	for _, student := range guardian.Students {
		resp.Students = append(resp.Students, FromStudent(student))
	}

	return resp
}
