package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// ExamController handles a teacher's exam endpoints.
type ExamController struct {
	exerciseService *services.ExerciseService
}

// NewExamController creates a new ExamController
func NewExamController(exerciseService *services.ExerciseService) *ExamController {
	return &ExamController{exerciseService: exerciseService}
}

// Create schedules an exam for one of the teacher's classes.
func (ctrl *ExamController) Create(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}

	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	exam, err := ctrl.exerciseService.CreateExam(c.Request.Context(), schoolID, teacherID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(exam))
}

// Get returns one of the teacher's exams.
func (ctrl *ExamController) Get(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	examID, ok := pathUUID(c, "examId")
	if !ok {
		return
	}

	exam, err := ctrl.exerciseService.GetExam(c.Request.Context(), schoolID, teacherID, examID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(exam))
}

// Update updates one of the teacher's exams.
func (ctrl *ExamController) Update(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	examID, ok := pathUUID(c, "examId")
	if !ok {
		return
	}

	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	exam, err := ctrl.exerciseService.UpdateExam(c.Request.Context(), schoolID, teacherID, examID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(exam))
}

// List returns a page of the teacher's exams.
func (ctrl *ExamController) List(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	filter, ok := bindAssignmentFilter(c)
	if !ok {
		return
	}

	exams, err := ctrl.exerciseService.ListExams(c.Request.Context(), schoolID, teacherID, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(exams))
}

// Delete soft-deletes one of the teacher's exams.
func (ctrl *ExamController) Delete(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	examID, ok := pathUUID(c, "examId")
	if !ok {
		return
	}

	if err := ctrl.exerciseService.DeleteExam(c.Request.Context(), schoolID, teacherID, examID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "exam deleted"}))
}
