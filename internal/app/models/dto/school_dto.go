package dto

import (
	"github.com/escolabr/escolar/internal/app/models"
)

// CreateSchoolRequest represents the payload for creating a school (tenant).
type CreateSchoolRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Document *string `json:"document,omitempty" binding:"omitempty,max=18"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
}

// UpdateSchoolRequest represents the payload for updating a school profile.
type UpdateSchoolRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Document *string `json:"document,omitempty" binding:"omitempty,max=18"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Active   *bool   `json:"active,omitempty"`
}

// SchoolResponse represents a school in API responses.
type SchoolResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Document *string `json:"document,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Active   bool    `json:"active"`
}

// SchoolListResponse represents a page of schools.
type SchoolListResponse struct {
	Schools    []SchoolResponse `json:"schools"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromSchool converts a models.School to a SchoolResponse.
func FromSchool(school *models.School) SchoolResponse {
	if school == nil {
		return SchoolResponse{}
	}
	return SchoolResponse{
		ID:       school.ID.String(),
		Name:     school.Name,
		Document: school.Document,
		Phone:    school.Phone,
		Active:   school.Active,
	}
}
