package models

import (
	"time"

	"github.com/google/uuid"
)

// SchoolClass defines a class ("turma"), based on the 'classes' table.
type SchoolClass struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	SchoolID     uuid.UUID  `json:"schoolId" db:"school_id"`
	Name         string     `json:"name" db:"name"`
	Grade        string     `json:"grade" db:"grade"`
	Letter       *string    `json:"letter,omitempty" db:"letter"`
	AcademicYear int        `json:"academicYear" db:"academic_year"`
	Active       bool       `json:"active" db:"active"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

// Class enrollment statuses.
const (
	ClassEnrollmentActive = "active"
	ClassEnrollmentClosed = "closed"
)

// ClassEnrollment links a student to a class within a school, based on the
// 'class_enrollments' table. A student holds at most one active row.
type ClassEnrollment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SchoolID  uuid.UUID `json:"schoolId" db:"school_id"`
	ClassID   uuid.UUID `json:"classId" db:"class_id"`
	StudentID uuid.UUID `json:"studentId" db:"student_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
