package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// PlanController handles the subscription plan catalog endpoints.
type PlanController struct {
	planService *services.PlanService
}

// NewPlanController creates a new PlanController
func NewPlanController(planService *services.PlanService) *PlanController {
	return &PlanController{planService: planService}
}

// Create creates a subscription plan.
func (ctrl *PlanController) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	plan, err := ctrl.planService.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse(plan))
}

// Get returns one plan.
func (ctrl *PlanController) Get(c *gin.Context) {
	planID, ok := pathUUID(c, "planId")
	if !ok {
		return
	}

	plan, err := ctrl.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(plan))
}

// Update updates a plan.
func (ctrl *PlanController) Update(c *gin.Context) {
	planID, ok := pathUUID(c, "planId")
	if !ok {
		return
	}

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	plan, err := ctrl.planService.UpdatePlan(c.Request.Context(), planID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(plan))
}

// List returns a page of plans.
func (ctrl *PlanController) List(c *gin.Context) {
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	plans, err := ctrl.planService.ListPlans(c.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(plans))
}
