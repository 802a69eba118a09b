package dto

import (
	"github.com/escolabr/escolar/internal/app/models"
)

// CreateTeacherRequest represents the payload for registering a teacher.
type CreateTeacherRequest struct {
	PersonInput
	RegistrationNumber string   `json:"registrationNumber" binding:"required,max=50"`
	Subjects           []string `json:"subjects,omitempty" binding:"omitempty,dive,max=100"`
	Specialization     *string  `json:"specialization,omitempty" binding:"omitempty,max=255"`
}

// UpdateTeacherRequest represents the payload for updating a teacher.
type UpdateTeacherRequest = CreateTeacherRequest

// TeacherResponse flattens a teaching profile with its identity fields.
type TeacherResponse struct {
	ID                 string   `json:"id"`
	RegistrationNumber string   `json:"registrationNumber"`
	Subjects           []string `json:"subjects,omitempty"`
	Specialization     *string  `json:"specialization,omitempty"`
	Active             bool     `json:"active"`
	FullName           string   `json:"fullName"`
	CPF                *string  `json:"cpf,omitempty"`
	Email              *string  `json:"email,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
}

// TeacherListResponse represents a page of teachers.
type TeacherListResponse struct {
	Teachers   []TeacherResponse `json:"teachers"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromTeacher converts a models.Teacher to a TeacherResponse.
func FromTeacher(teacher *models.Teacher) TeacherResponse {
	if teacher == nil {
		return TeacherResponse{}
	}

	resp := TeacherResponse{
		ID:                 teacher.ID.String(),
		RegistrationNumber: teacher.RegistrationNumber,
		Subjects:           teacher.Subjects,
		Specialization:     teacher.Specialization,
		Active:             teacher.Active,
	}

	if teacher.Identity != nil {
		resp.FullName = teacher.Identity.FullName
		resp.CPF = teacher.Identity.CPF
		resp.Email = teacher.Identity.Email
		resp.Phone = teacher.Identity.Phone
	}

	return resp
}
