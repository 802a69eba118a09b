package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// ExerciseController handles a teacher's exercise endpoints.
type ExerciseController struct {
	exerciseService *services.ExerciseService
}

// NewExerciseController creates a new ExerciseController
func NewExerciseController(exerciseService *services.ExerciseService) *ExerciseController {
	return &ExerciseController{exerciseService: exerciseService}
}

// assignmentScope parses the school and teacher path parameters shared by the
// exercise and exam routes.
func assignmentScope(c *gin.Context) (schoolID, teacherID uuid.UUID, ok bool) {
	schoolID, ok = pathUUID(c, "schoolId")
	if !ok {
		return
	}
	teacherID, ok = pathUUID(c, "teacherId")
	return
}

// bindAssignmentFilter binds the exercise and exam list query parameters.
func bindAssignmentFilter(c *gin.Context) (*dto.ExerciseFilterRequest, bool) {
	var filter dto.ExerciseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(c, err)
		return nil, false
	}
	return &filter, true
}

// Create publishes an exercise for one of the teacher's classes.
func (ctrl *ExerciseController) Create(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}

	var req dto.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	exercise, err := ctrl.exerciseService.CreateExercise(c.Request.Context(), schoolID, teacherID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(exercise))
}

// Get returns one of the teacher's exercises.
func (ctrl *ExerciseController) Get(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	exerciseID, ok := pathUUID(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := ctrl.exerciseService.GetExercise(c.Request.Context(), schoolID, teacherID, exerciseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(exercise))
}

// Update updates one of the teacher's exercises.
func (ctrl *ExerciseController) Update(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	exerciseID, ok := pathUUID(c, "exerciseId")
	if !ok {
		return
	}

	var req dto.UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	exercise, err := ctrl.exerciseService.UpdateExercise(c.Request.Context(), schoolID, teacherID, exerciseID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(exercise))
}

// List returns a page of the teacher's exercises.
func (ctrl *ExerciseController) List(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	filter, ok := bindAssignmentFilter(c)
	if !ok {
		return
	}

	exercises, err := ctrl.exerciseService.ListExercises(c.Request.Context(), schoolID, teacherID, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(exercises))
}

// Delete soft-deletes one of the teacher's exercises.
func (ctrl *ExerciseController) Delete(c *gin.Context) {
	schoolID, teacherID, ok := assignmentScope(c)
	if !ok {
		return
	}
	exerciseID, ok := pathUUID(c, "exerciseId")
	if !ok {
		return
	}

	if err := ctrl.exerciseService.DeleteExercise(c.Request.Context(), schoolID, teacherID, exerciseID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "exercise deleted"}))
}
