package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
)

type fakePlanRepo struct {
	plans map[uuid.UUID]*models.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[uuid.UUID]*models.Plan)}
}

func (f *fakePlanRepo) WithTx(tx pgx.Tx) repositories.IPlanRepository { return f }

func (f *fakePlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, apperrors.ErrPlanNotFound
	}
	copied := *plan
	return &copied, nil
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *models.Plan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakePlanRepo) Update(ctx context.Context, plan *models.Plan) error {
	if _, ok := f.plans[plan.ID]; !ok {
		return apperrors.ErrPlanNotFound
	}
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakePlanRepo) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Plan, int64, error) {
	var out []*models.Plan
	for _, plan := range f.plans {
		if filter.Active != nil && plan.Active != *filter.Active {
			continue
		}
		copied := *plan
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakeSubscriptionRepo struct {
	subscriptions []*models.Subscription
	lastFilter    repositories.SubscriptionFilter
}

func (f *fakeSubscriptionRepo) WithTx(tx pgx.Tx) repositories.ISubscriptionRepository { return f }

func (f *fakeSubscriptionRepo) List(ctx context.Context, filter repositories.SubscriptionFilter) ([]*models.Subscription, int64, error) {
	f.lastFilter = filter
	var out []*models.Subscription
	for _, sub := range f.subscriptions {
		if filter.Status != nil && sub.Status != *filter.Status {
			continue
		}
		copied := *sub
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func planFixture() (*PlanService, *fakePlanRepo, *fakeSubscriptionRepo) {
	plans := newFakePlanRepo()
	subscriptions := &fakeSubscriptionRepo{}
	return NewPlanService(plans, subscriptions), plans, subscriptions
}

func TestCreatePlanDefaultsToActive(t *testing.T) {
	service, plans, _ := planFixture()

	resp, err := service.CreatePlan(context.Background(), &dto.CreatePlanRequest{
		Name:         "Basic",
		MonthlyPrice: 99.90,
		Features:     []string{"students", "teachers"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Basic", resp.Name)
	assert.Equal(t, 99.90, resp.MonthlyPrice)
	assert.True(t, resp.Active)
	require.Len(t, plans.plans, 1)
}

func TestCreatePlanHonorsExplicitInactive(t *testing.T) {
	service, _, _ := planFixture()

	resp, err := service.CreatePlan(context.Background(), &dto.CreatePlanRequest{
		Name:         "Legacy",
		MonthlyPrice: 0,
		Active:       boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, resp.Active)
}

func TestUpdatePlanRoundtrip(t *testing.T) {
	service, _, _ := planFixture()
	ctx := context.Background()

	created, err := service.CreatePlan(ctx, &dto.CreatePlanRequest{
		Name:         "Basic",
		MonthlyPrice: 99.90,
	})
	require.NoError(t, err)
	planID := uuid.MustParse(created.ID)

	updated, err := service.UpdatePlan(ctx, planID, &dto.UpdatePlanRequest{
		Name:         "Basic Plus",
		MonthlyPrice: 129.90,
		MaxStudents:  intPtr(500),
	})
	require.NoError(t, err)

	assert.Equal(t, "Basic Plus", updated.Name)
	assert.Equal(t, 129.90, updated.MonthlyPrice)
	require.NotNil(t, updated.MaxStudents)
	assert.Equal(t, 500, *updated.MaxStudents)

	fetched, err := service.GetPlan(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, "Basic Plus", fetched.Name)
}

func TestUpdatePlanUnknown(t *testing.T) {
	service, _, _ := planFixture()

	_, err := service.UpdatePlan(context.Background(), uuid.New(), &dto.UpdatePlanRequest{
		Name:         "Ghost",
		MonthlyPrice: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}

func TestListSubscriptionsPassesFilterAndFlattensNames(t *testing.T) {
	service, _, subscriptions := planFixture()

	school := &models.School{ID: uuid.New(), Name: "Escola Modelo"}
	plan := &models.Plan{ID: uuid.New(), Name: "Basic"}
	subscriptions.subscriptions = []*models.Subscription{
		{
			ID:       uuid.New(),
			SchoolID: school.ID,
			PlanID:   plan.ID,
			Status:   models.SubscriptionActive,
			Period:   models.SubscriptionMonthly,
			Price:    99.90,
			StartsAt: time.Now(),
			School:   school,
			Plan:     plan,
		},
		{
			ID:       uuid.New(),
			SchoolID: uuid.New(),
			PlanID:   plan.ID,
			Status:   models.SubscriptionCanceled,
			Period:   models.SubscriptionMonthly,
			Price:    99.90,
			StartsAt: time.Now(),
			Plan:     plan,
		},
	}

	status := models.SubscriptionActive
	resp, err := service.ListSubscriptions(context.Background(), &dto.SubscriptionFilterRequest{
		Status:   &status,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)

	require.NotNil(t, subscriptions.lastFilter.Status)
	assert.Equal(t, models.SubscriptionActive, *subscriptions.lastFilter.Status)

	require.Len(t, resp.Subscriptions, 1)
	assert.Equal(t, "Escola Modelo", resp.Subscriptions[0].SchoolName)
	assert.Equal(t, "Basic", resp.Subscriptions[0].PlanName)
	assert.Equal(t, models.SubscriptionActive, resp.Subscriptions[0].Status)
}
