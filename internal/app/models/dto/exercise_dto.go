package dto

import (
	"github.com/escolabr/escolar/internal/app/models"
)

// CreateExerciseRequest represents the payload for publishing an exercise.
// DueDate uses the "2006-01-02" format.
type CreateExerciseRequest struct {
	ClassID       string  `json:"classId" binding:"required,uuid"`
	Subject       string  `json:"subject" binding:"required,max=100"`
	Title         string  `json:"title" binding:"required,max=255"`
	Description   *string `json:"description,omitempty"`
	DueDate       string  `json:"dueDate" binding:"required"`
	AttachmentURL *string `json:"attachmentUrl,omitempty" binding:"omitempty,url,max=2048"`
}

// UpdateExerciseRequest represents the payload for updating an exercise.
type UpdateExerciseRequest = CreateExerciseRequest

// ExerciseFilterRequest filters a teacher's exercise listing.
type ExerciseFilterRequest struct {
	Search   *string `form:"search,omitempty"`
	ClassID  *string `form:"classId,omitempty" binding:"omitempty,uuid"`
	Subject  *string `form:"subject,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// ExerciseResponse represents an exercise in API responses.
type ExerciseResponse struct {
	ID            string  `json:"id"`
	ClassID       string  `json:"classId"`
	ClassName     string  `json:"className,omitempty"`
	Subject       string  `json:"subject"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	DueDate       string  `json:"dueDate"`
	AttachmentURL *string `json:"attachmentUrl,omitempty"`
}

// ExerciseListResponse represents a page of exercises.
type ExerciseListResponse struct {
	Exercises  []ExerciseResponse `json:"exercises"`
	Pagination PaginationInfo     `json:"pagination"`
}

// FromExercise converts a models.Exercise to an ExerciseResponse.
func FromExercise(exercise *models.Exercise) ExerciseResponse {
	if exercise == nil {
		return ExerciseResponse{}
	}

	resp := ExerciseResponse{
		ID:            exercise.ID.String(),
		ClassID:       exercise.ClassID.String(),
		Subject:       exercise.Subject,
		Title:         exercise.Title,
		Description:   exercise.Description,
		DueDate:       exercise.DueDate.Format("2006-01-02"),
		AttachmentURL: exercise.AttachmentURL,
	}
	if exercise.Class != nil {
		resp.ClassName = exercise.Class.Name
	}
	return resp
}

// CreateExamRequest represents the payload for scheduling an exam. ExamDate
// uses "2006-01-02" and StartTime uses "15:04".
type CreateExamRequest struct {
	ClassID         string  `json:"classId" binding:"required,uuid"`
	Subject         string  `json:"subject" binding:"required,max=100"`
	Title           string  `json:"title" binding:"required,max=255"`
	Description     *string `json:"description,omitempty"`
	ExamDate        string  `json:"examDate" binding:"required"`
	StartTime       *string `json:"startTime,omitempty" binding:"omitempty,datetime=15:04"`
	Room            *string `json:"room,omitempty" binding:"omitempty,max=50"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" binding:"omitempty,min=1"`
}

// UpdateExamRequest represents the payload for updating an exam.
type UpdateExamRequest = CreateExamRequest

// ExamResponse represents an exam in API responses.
type ExamResponse struct {
	ID              string  `json:"id"`
	ClassID         string  `json:"classId"`
	ClassName       string  `json:"className,omitempty"`
	Subject         string  `json:"subject"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	ExamDate        string  `json:"examDate"`
	StartTime       *string `json:"startTime,omitempty"`
	Room            *string `json:"room,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
}

// ExamListResponse represents a page of exams.
type ExamListResponse struct {
	Exams      []ExamResponse `json:"exams"`
	Pagination PaginationInfo `json:"pagination"`
}

// FromExam converts a models.Exam to an ExamResponse.
func FromExam(exam *models.Exam) ExamResponse {
	if exam == nil {
		return ExamResponse{}
	}

	resp := ExamResponse{
		ID:              exam.ID.String(),
		ClassID:         exam.ClassID.String(),
		Subject:         exam.Subject,
		Title:           exam.Title,
		Description:     exam.Description,
		ExamDate:        exam.ExamDate.Format("2006-01-02"),
		StartTime:       exam.StartTime,
		Room:            exam.Room,
		DurationMinutes: exam.DurationMinutes,
	}
	if exam.Class != nil {
		resp.ClassName = exam.Class.Name
	}
	return resp
}
