package dto

import (
	"github.com/escolabr/escolar/internal/app/models"
)

// CreateClassRequest represents the payload for creating a class.
type CreateClassRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Grade        string  `json:"grade" binding:"required,max=50"`
	Letter       *string `json:"letter,omitempty" binding:"omitempty,max=5"`
	AcademicYear int     `json:"academicYear" binding:"required,min=2000,max=2100"`
}

// UpdateClassRequest represents the payload for updating a class.
type UpdateClassRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Grade        string  `json:"grade" binding:"required,max=50"`
	Letter       *string `json:"letter,omitempty" binding:"omitempty,max=5"`
	AcademicYear int     `json:"academicYear" binding:"required,min=2000,max=2100"`
	Active       *bool   `json:"active,omitempty"`
}

// ReenrollStudentRequest moves a student's active class enrollment to
// another class of the same school.
type ReenrollStudentRequest struct {
	ClassID string `json:"classId" binding:"required,uuid"`
}

// ClassResponse represents a class in API responses.
type ClassResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Grade        string  `json:"grade"`
	Letter       *string `json:"letter,omitempty"`
	AcademicYear int     `json:"academicYear"`
	Active       bool    `json:"active"`
}

// ClassListResponse represents a page of classes.
type ClassListResponse struct {
	Classes    []ClassResponse `json:"classes"`
	Pagination PaginationInfo  `json:"pagination"`
}

// FromClass converts a models.SchoolClass to a ClassResponse.
func FromClass(class *models.SchoolClass) ClassResponse {
	if class == nil {
		return ClassResponse{}
	}
	return ClassResponse{
		ID:           class.ID.String(),
		Name:         class.Name,
		Grade:        class.Grade,
		Letter:       class.Letter,
		AcademicYear: class.AcademicYear,
		Active:       class.Active,
	}
}
