package dto

import (
	"time"

	"github.com/escolabr/escolar/internal/app/models"
)

// CreateStudentRequest represents the payload for enrolling a student.
// Dates use the "2006-01-02" format.
type CreateStudentRequest struct {
	PersonInput
	EnrollmentNumber string  `json:"enrollmentNumber" binding:"required,max=50"`
	Grade            string  `json:"grade" binding:"required,max=50"`
	Section          *string `json:"section,omitempty" binding:"omitempty,max=10"`
	BirthDate        *string `json:"birthDate,omitempty"`
	EnrolledAt       *string `json:"enrolledAt,omitempty"`
	MedicalNotes     *string `json:"medicalNotes,omitempty"`
}

// UpdateStudentRequest represents the payload for updating an enrollment.
// Shape matches CreateStudentRequest; the enrollment number uniqueness check
// ignores the record being updated.
type UpdateStudentRequest = CreateStudentRequest

// StudentResponse flattens a student profile with its identity fields.
type StudentResponse struct {
	ID               string  `json:"id"`
	EnrollmentNumber string  `json:"enrollmentNumber"`
	Grade            string  `json:"grade"`
	Section          *string `json:"section,omitempty"`
	BirthDate        *string `json:"birthDate,omitempty"`
	EnrolledAt       *string `json:"enrolledAt,omitempty"`
	MedicalNotes     *string `json:"medicalNotes,omitempty"`
	Active           bool    `json:"active"`
	FullName         string  `json:"fullName"`
	CPF              *string `json:"cpf,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
}

// StudentListResponse represents a page of students.
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromStudent converts a models.Student to a StudentResponse.
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}

	resp := StudentResponse{
		ID:               student.ID.String(),
		EnrollmentNumber: student.EnrollmentNumber,
		Grade:            student.Grade,
		Section:          student.Section,
		BirthDate:        formatDate(student.BirthDate),
		EnrolledAt:       formatDate(student.EnrolledAt),
		MedicalNotes:     student.MedicalNotes,
		Active:           student.Active,
	}

	if student.Identity != nil {
		resp.FullName = student.Identity.FullName
		resp.CPF = student.Identity.CPF
		resp.Email = student.Identity.Email
		resp.Phone = student.Identity.Phone
	}

	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
