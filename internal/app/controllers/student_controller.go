package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// StudentController handles student enrollment endpoints, always scoped to a
// school taken from the path.
type StudentController struct {
	enrollmentService *services.EnrollmentService
}

// NewStudentController creates a new StudentController
func NewStudentController(enrollmentService *services.EnrollmentService) *StudentController {
	return &StudentController{enrollmentService: enrollmentService}
}

// Enroll enrolls a person as a student of the school.
func (ctrl *StudentController) Enroll(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.enrollmentService.EnrollStudent(c.Request.Context(), schoolID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// Get returns one student of the school.
func (ctrl *StudentController) Get(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	studentID, ok := pathUUID(c, "studentId")
	if !ok {
		return
	}

	student, err := ctrl.enrollmentService.GetStudent(c.Request.Context(), schoolID, studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// Update updates a student enrollment.
func (ctrl *StudentController) Update(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	studentID, ok := pathUUID(c, "studentId")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.enrollmentService.UpdateStudent(c.Request.Context(), schoolID, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// List returns a page of the school's students.
func (ctrl *StudentController) List(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	students, err := ctrl.enrollmentService.ListStudents(c.Request.Context(), schoolID, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// Delete soft-deletes a student enrollment.
func (ctrl *StudentController) Delete(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	studentID, ok := pathUUID(c, "studentId")
	if !ok {
		return
	}

	if err := ctrl.enrollmentService.DeleteStudent(c.Request.Context(), schoolID, studentID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "student deleted"}))
}
