package dto

import (
	"time"

	"github.com/escolabr/escolar/internal/app/models"
)

// CreatePlanRequest represents the payload for creating a subscription plan.
type CreatePlanRequest struct {
	Name         string   `json:"name" binding:"required,max=255"`
	Description  *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	MonthlyPrice float64  `json:"monthlyPrice" binding:"gte=0"`
	AnnualPrice  *float64 `json:"annualPrice,omitempty" binding:"omitempty,gte=0"`
	MaxStudents  *int     `json:"maxStudents,omitempty" binding:"omitempty,gte=0"`
	MaxTeachers  *int     `json:"maxTeachers,omitempty" binding:"omitempty,gte=0"`
	MaxStorageMB *int     `json:"maxStorageMb,omitempty" binding:"omitempty,gte=0"`
	Features     []string `json:"features,omitempty" binding:"omitempty,dive,max=255"`
	Active       *bool    `json:"active,omitempty"`
}

// UpdatePlanRequest represents the payload for updating a plan.
type UpdatePlanRequest = CreatePlanRequest

// PlanResponse represents a plan in API responses.
type PlanResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	MonthlyPrice float64  `json:"monthlyPrice"`
	AnnualPrice  *float64 `json:"annualPrice,omitempty"`
	MaxStudents  *int     `json:"maxStudents,omitempty"`
	MaxTeachers  *int     `json:"maxTeachers,omitempty"`
	MaxStorageMB *int     `json:"maxStorageMb,omitempty"`
	Features     []string `json:"features,omitempty"`
	Active       bool     `json:"active"`
}

// PlanListResponse represents a page of plans.
type PlanListResponse struct {
	Plans      []PlanResponse `json:"plans"`
	Pagination PaginationInfo `json:"pagination"`
}

// FromPlan converts a models.Plan to a PlanResponse.
func FromPlan(plan *models.Plan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:           plan.ID.String(),
		Name:         plan.Name,
		Description:  plan.Description,
		MonthlyPrice: plan.MonthlyPrice,
		AnnualPrice:  plan.AnnualPrice,
		MaxStudents:  plan.MaxStudents,
		MaxTeachers:  plan.MaxTeachers,
		MaxStorageMB: plan.MaxStorageMB,
		Features:     plan.Features,
		Active:       plan.Active,
	}
}

// SubscriptionFilterRequest filters the subscription listing.
type SubscriptionFilterRequest struct {
	Search   *string `form:"search,omitempty"`
	Status   *string `form:"status,omitempty" binding:"omitempty,oneof=active canceled expired"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// SubscriptionResponse flattens a subscription with its school and plan.
type SubscriptionResponse struct {
	ID         string     `json:"id"`
	SchoolID   string     `json:"schoolId"`
	SchoolName string     `json:"schoolName,omitempty"`
	PlanID     string     `json:"planId"`
	PlanName   string     `json:"planName,omitempty"`
	Status     string     `json:"status"`
	Period     string     `json:"period"`
	Price      float64    `json:"price"`
	StartsAt   time.Time  `json:"startsAt"`
	EndsAt     *time.Time `json:"endsAt,omitempty"`
}

// SubscriptionListResponse represents a page of subscriptions.
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// FromSubscription converts a models.Subscription to a SubscriptionResponse.
func FromSubscription(sub *models.Subscription) SubscriptionResponse {
	if sub == nil {
		return SubscriptionResponse{}
	}

	resp := SubscriptionResponse{
		ID:       sub.ID.String(),
		SchoolID: sub.SchoolID.String(),
		PlanID:   sub.PlanID.String(),
		Status:   sub.Status,
		Period:   sub.Period,
		Price:    sub.Price,
		StartsAt: sub.StartsAt,
		EndsAt:   sub.EndsAt,
	}

	if sub.School != nil {
		resp.SchoolName = sub.School.Name
	}
	if sub.Plan != nil {
		resp.PlanName = sub.Plan.Name
	}

	return resp
}
