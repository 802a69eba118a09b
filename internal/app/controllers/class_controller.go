package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// ClassController handles class endpoints and student re-enrollment.
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// Create creates a class in the school.
func (ctrl *ClassController) Create(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	class, err := ctrl.classService.CreateClass(c.Request.Context(), schoolID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(class))
}

// Get returns one class of the school.
func (ctrl *ClassController) Get(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	classID, ok := pathUUID(c, "classId")
	if !ok {
		return
	}

	class, err := ctrl.classService.GetClass(c.Request.Context(), schoolID, classID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(class))
}

// Update updates a class.
func (ctrl *ClassController) Update(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	classID, ok := pathUUID(c, "classId")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	class, err := ctrl.classService.UpdateClass(c.Request.Context(), schoolID, classID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(class))
}

// List returns a page of the school's classes.
func (ctrl *ClassController) List(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	classes, err := ctrl.classService.ListClasses(c.Request.Context(), schoolID, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(classes))
}

// Delete soft-deletes a class.
func (ctrl *ClassController) Delete(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	classID, ok := pathUUID(c, "classId")
	if !ok {
		return
	}

	if err := ctrl.classService.DeleteClass(c.Request.Context(), schoolID, classID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "class deleted"}))
}

// ReenrollStudent moves a student's active class enrollment to another class.
func (ctrl *ClassController) ReenrollStudent(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	studentID, ok := pathUUID(c, "studentId")
	if !ok {
		return
	}

	var req dto.ReenrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	class, err := ctrl.classService.ReenrollStudent(c.Request.Context(), schoolID, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(class))
}
