package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// SubscriptionController handles the platform-wide subscription listing.
type SubscriptionController struct {
	planService *services.PlanService
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(planService *services.PlanService) *SubscriptionController {
	return &SubscriptionController{planService: planService}
}

// List returns a page of school subscriptions.
func (ctrl *SubscriptionController) List(c *gin.Context) {
	var filter dto.SubscriptionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	subscriptions, err := ctrl.planService.ListSubscriptions(c.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(subscriptions))
}
