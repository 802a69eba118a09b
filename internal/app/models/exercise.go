package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a homework assignment a teacher hands to one of their classes,
// based on the 'exercises' table.
type Exercise struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	SchoolID      uuid.UUID  `json:"schoolId" db:"school_id"`
	TeacherID     uuid.UUID  `json:"teacherId" db:"teacher_id"`
	ClassID       uuid.UUID  `json:"classId" db:"class_id"`
	Subject       string     `json:"subject" db:"subject"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description,omitempty" db:"description"`
	DueDate       time.Time  `json:"dueDate" db:"due_date"`
	AttachmentURL *string    `json:"attachmentUrl,omitempty" db:"attachment_url"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt     *time.Time `json:"-" db:"deleted_at"`

	// Relations (populated when needed)
	Class *SchoolClass `json:"class,omitempty"`
}

// Exam is a scheduled test for a class, based on the 'exams' table.
// StartTime holds a wall-clock "HH:MM" string.
type Exam struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	SchoolID        uuid.UUID  `json:"schoolId" db:"school_id"`
	TeacherID       uuid.UUID  `json:"teacherId" db:"teacher_id"`
	ClassID         uuid.UUID  `json:"classId" db:"class_id"`
	Subject         string     `json:"subject" db:"subject"`
	Title           string     `json:"title" db:"title"`
	Description     *string    `json:"description,omitempty" db:"description"`
	ExamDate        time.Time  `json:"examDate" db:"exam_date"`
	StartTime       *string    `json:"startTime,omitempty" db:"start_time"`
	Room            *string    `json:"room,omitempty" db:"room"`
	DurationMinutes *int       `json:"durationMinutes,omitempty" db:"duration_minutes"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt       *time.Time `json:"-" db:"deleted_at"`

	// Relations (populated when needed)
	Class *SchoolClass `json:"class,omitempty"`
}
