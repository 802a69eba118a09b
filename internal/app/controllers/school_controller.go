package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// SchoolController handles school management endpoints.
type SchoolController struct {
	schoolService *services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService) *SchoolController {
	return &SchoolController{schoolService: schoolService}
}

// Create registers a new school.
func (ctrl *SchoolController) Create(c *gin.Context) {
	var req dto.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	school, err := ctrl.schoolService.CreateSchool(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(school))
}

// Get returns one school.
func (ctrl *SchoolController) Get(c *gin.Context) {
	id, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}

	school, err := ctrl.schoolService.GetSchool(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(school))
}

// Update updates a school.
func (ctrl *SchoolController) Update(c *gin.Context) {
	id, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	school, err := ctrl.schoolService.UpdateSchool(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(school))
}

// List returns a page of schools.
func (ctrl *SchoolController) List(c *gin.Context) {
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	schools, err := ctrl.schoolService.ListSchools(c.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(schools))
}

// Delete soft-deletes a school.
func (ctrl *SchoolController) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "schoolId")
	if !ok {
		return
	}

	if err := ctrl.schoolService.DeleteSchool(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "school deleted"}))
}
