package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/helpers"
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// PlanService manages the subscription plan catalog and the per-school
// subscription listing. Both are platform-level resources for the general
// administrator, not school-scoped data.
type PlanService struct {
	plans         repositories.IPlanRepository
	subscriptions repositories.ISubscriptionRepository
}

// NewPlanService creates a new PlanService
func NewPlanService(plans repositories.IPlanRepository, subscriptions repositories.ISubscriptionRepository) *PlanService {
	return &PlanService{plans: plans, subscriptions: subscriptions}
}

// CreatePlan creates a subscription plan. Plans start active unless the
// request says otherwise.
func (s *PlanService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	plan := &models.Plan{
		Name:         req.Name,
		Description:  req.Description,
		MonthlyPrice: req.MonthlyPrice,
		AnnualPrice:  req.AnnualPrice,
		MaxStudents:  req.MaxStudents,
		MaxTeachers:  req.MaxTeachers,
		MaxStorageMB: req.MaxStorageMB,
		Features:     req.Features,
		Active:       true,
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	logger.Info().
		Str("planID", plan.ID.String()).
		Str("name", plan.Name).
		Msg("Plan created")

	resp := dto.FromPlan(plan)
	return &resp, nil
}

// GetPlan returns one plan.
func (s *PlanService) GetPlan(ctx context.Context, planID uuid.UUID) (*dto.PlanResponse, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromPlan(plan)
	return &resp, nil
}

// UpdatePlan updates a plan's mutable fields. Schools already subscribed keep
// their recorded price; the plan change only affects new subscriptions.
func (s *PlanService) UpdatePlan(ctx context.Context, planID uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.MonthlyPrice = req.MonthlyPrice
	plan.AnnualPrice = req.AnnualPrice
	plan.MaxStudents = req.MaxStudents
	plan.MaxTeachers = req.MaxTeachers
	plan.MaxStorageMB = req.MaxStorageMB
	plan.Features = req.Features
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}

	resp := dto.FromPlan(plan)
	return &resp, nil
}

// ListPlans returns a page of plans.
func (s *PlanService) ListPlans(ctx context.Context, filter *dto.ListFilterRequest) (*dto.PlanListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	plans, total, err := s.plans.List(ctx, repositories.ListFilter{
		Search: filter.Search,
		Active: filter.Active,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.PlanListResponse{
		Plans:      make([]dto.PlanResponse, 0, len(plans)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, plan := range plans {
		resp.Plans = append(resp.Plans, dto.FromPlan(plan))
	}
	return resp, nil
}

// ListSubscriptions returns a page of school subscriptions with their school
// and plan names.
func (s *PlanService) ListSubscriptions(ctx context.Context, filter *dto.SubscriptionFilterRequest) (*dto.SubscriptionListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	subscriptions, total, err := s.subscriptions.List(ctx, repositories.SubscriptionFilter{
		Search: filter.Search,
		Status: filter.Status,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SubscriptionListResponse{
		Subscriptions: make([]dto.SubscriptionResponse, 0, len(subscriptions)),
		Pagination:    helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, sub := range subscriptions {
		resp.Subscriptions = append(resp.Subscriptions, dto.FromSubscription(sub))
	}
	return resp, nil
}
