package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// GuardianController handles guardian registration and the guardian-student
// links.
type GuardianController struct {
	enrollmentService *services.EnrollmentService
}

// NewGuardianController creates a new GuardianController
func NewGuardianController(enrollmentService *services.EnrollmentService) *GuardianController {
	return &GuardianController{enrollmentService: enrollmentService}
}

// Enroll registers a person as a guardian at the school.
func (ctrl *GuardianController) Enroll(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}

	var req dto.CreateGuardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	guardian, err := ctrl.enrollmentService.EnrollGuardian(c.Request.Context(), schoolID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(guardian))
}

// Get returns one guardian of the school with linked students.
func (ctrl *GuardianController) Get(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	guardianID, ok := pathUUID(c, "guardianId")
	if !ok {
		return
	}

	guardian, err := ctrl.enrollmentService.GetGuardian(c.Request.Context(), schoolID, guardianID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(guardian))
}

// Update updates a guardianship profile.
func (ctrl *GuardianController) Update(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	guardianID, ok := pathUUID(c, "guardianId")
	if !ok {
		return
	}

	var req dto.UpdateGuardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	guardian, err := ctrl.enrollmentService.UpdateGuardian(c.Request.Context(), schoolID, guardianID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(guardian))
}

// LinkStudents links the guardian to students of the same school.
func (ctrl *GuardianController) LinkStudents(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	guardianID, ok := pathUUID(c, "guardianId")
	if !ok {
		return
	}

	var req dto.LinkStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	guardian, err := ctrl.enrollmentService.LinkStudents(c.Request.Context(), schoolID, guardianID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(guardian))
}

// List returns a page of the school's guardians.
func (ctrl *GuardianController) List(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	guardians, err := ctrl.enrollmentService.ListGuardians(c.Request.Context(), schoolID, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(guardians))
}

// Delete soft-deletes a guardianship profile.
func (ctrl *GuardianController) Delete(c *gin.Context) {
	schoolID, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}
	guardianID, ok := pathUUID(c, "guardianId")
	if !ok {
		return
	}

	if err := ctrl.enrollmentService.DeleteGuardian(c.Request.Context(), schoolID, guardianID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "guardian deleted"}))
}
