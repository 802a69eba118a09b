package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/dberrors"
)

// IPlanRepository defines subscription plan database operations.
type IPlanRepository interface {
	WithTx(tx pgx.Tx) IPlanRepository
	GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	Create(ctx context.Context, plan *models.Plan) error
	Update(ctx context.Context, plan *models.Plan) error
	List(ctx context.Context, filter ListFilter) ([]*models.Plan, int64, error)
}

// PlanRepository handles plan database operations
type PlanRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db Querier) *PlanRepository {
	return &PlanRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PlanRepository) WithTx(tx pgx.Tx) IPlanRepository {
	return &PlanRepository{db: tx, sb: r.sb}
}

var planColumns = []string{
	"id", "name", "description", "monthly_price", "annual_price",
	"max_students", "max_teachers", "max_storage_mb", "features",
	"active", "created_at", "updated_at",
}

func scanPlan(row pgx.Row) (*models.Plan, error) {
	var plan models.Plan
	err := row.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.MonthlyPrice,
		&plan.AnnualPrice, &plan.MaxStudents, &plan.MaxTeachers,
		&plan.MaxStorageMB, &plan.Features, &plan.Active,
		&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("error scanning plan row: %w", err)
	}
	return &plan, nil
}

// GetByID retrieves a plan.
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	sql, args, err := r.sb.Select(planColumns...).
		From("plans").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build plan query: %w", err)
	}
	return scanPlan(r.db.QueryRow(ctx, sql, args...))
}

// Create inserts a plan.
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.Features == nil {
		plan.Features = []string{}
	}

	sql, args, err := r.sb.Insert("plans").
		Columns("id", "name", "description", "monthly_price", "annual_price",
			"max_students", "max_teachers", "max_storage_mb", "features", "active").
		Values(plan.ID, plan.Name, plan.Description, plan.MonthlyPrice,
			plan.AnnualPrice, plan.MaxStudents, plan.MaxTeachers,
			plan.MaxStorageMB, plan.Features, plan.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create plan query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error creating plan: %w", err)
	}
	return nil
}

// Update persists the mutable plan fields.
func (r *PlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	if plan.Features == nil {
		plan.Features = []string{}
	}

	sql, args, err := r.sb.Update("plans").
		Set("name", plan.Name).
		Set("description", plan.Description).
		Set("monthly_price", plan.MonthlyPrice).
		Set("annual_price", plan.AnnualPrice).
		Set("max_students", plan.MaxStudents).
		Set("max_teachers", plan.MaxTeachers).
		Set("max_storage_mb", plan.MaxStorageMB).
		Set("features", plan.Features).
		Set("active", plan.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": plan.ID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update plan query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}
	return nil
}

// List returns a page of plans plus the total count.
func (r *PlanRepository) List(ctx context.Context, filter ListFilter) ([]*models.Plan, int64, error) {
	base := r.sb.Select(planColumns...).
		From("plans").
		Where("deleted_at IS NULL")
	countQ := r.sb.Select("COUNT(*)").
		From("plans").
		Where("deleted_at IS NULL")

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"description": like},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.Active != nil {
		base = base.Where(squirrel.Eq{"active": *filter.Active})
		countQ = countQ.Where(squirrel.Eq{"active": *filter.Active})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build plan count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting plans: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("name", "id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build plan list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
	}
	return plans, total, rows.Err()
}
