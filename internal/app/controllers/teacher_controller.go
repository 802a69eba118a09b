package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// TeacherController handles teacher registration endpoints.
type TeacherController struct {
	enrollmentService *services.EnrollmentService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(enrollmentService *services.EnrollmentService) *TeacherController {
	return &TeacherController{enrollmentService: enrollmentService}
}

// Enroll registers a person as a teacher of the school.
func (ctrl *TeacherController) Enroll(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}

	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	teacher, err := ctrl.enrollmentService.EnrollTeacher(c.Request.Context(), schoolID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(teacher))
}

// Get returns one teacher of the school.
func (ctrl *TeacherController) Get(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	teacherID, ok := pathUUID(c, "teacherId")
	if !ok {
		return
	}

	teacher, err := ctrl.enrollmentService.GetTeacher(c.Request.Context(), schoolID, teacherID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(teacher))
}

// Update updates a teaching profile.
func (ctrl *TeacherController) Update(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	teacherID, ok := pathUUID(c, "teacherId")
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	teacher, err := ctrl.enrollmentService.UpdateTeacher(c.Request.Context(), schoolID, teacherID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(teacher))
}

// List returns a page of the school's teachers.
func (ctrl *TeacherController) List(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	teachers, err := ctrl.enrollmentService.ListTeachers(c.Request.Context(), schoolID, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(teachers))
}

// Delete soft-deletes a teaching profile.
func (ctrl *TeacherController) Delete(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	teacherID, ok := pathUUID(c, "teacherId")
	if !ok {
		return
	}

	if err := ctrl.enrollmentService.DeleteTeacher(c.Request.Context(), schoolID, teacherID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "teacher deleted"}))
}
