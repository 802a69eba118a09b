package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/escolabr/escolar/internal/app/models"
)

// SubscriptionFilter filters the subscription listing: free-text search over
// school and plan names plus an exact status match.
type SubscriptionFilter struct {
	Search *string
	Status *string
	Offset uint64
	Limit  int
}

// ISubscriptionRepository defines subscription database operations.
type ISubscriptionRepository interface {
	WithTx(tx pgx.Tx) ISubscriptionRepository
	List(ctx context.Context, filter SubscriptionFilter) ([]*models.Subscription, int64, error)
}

// SubscriptionRepository handles subscription database operations
type SubscriptionRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db Querier) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *SubscriptionRepository) WithTx(tx pgx.Tx) ISubscriptionRepository {
	return &SubscriptionRepository{db: tx, sb: r.sb}
}

func subscriptionSelect(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(
		"sub.id", "sub.school_id", "sub.plan_id", "sub.status", "sub.period",
		"sub.price", "sub.starts_at", "sub.ends_at", "sub.created_at", "sub.updated_at",
		"s.name", "p.name").
		From("subscriptions sub").
		Join("schools s ON s.id = sub.school_id").
		Join("plans p ON p.id = sub.plan_id").
		Where("sub.deleted_at IS NULL")
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var sub models.Subscription
	var school models.School
	var plan models.Plan
	err := row.Scan(&sub.ID, &sub.SchoolID, &sub.PlanID, &sub.Status, &sub.Period,
		&sub.Price, &sub.StartsAt, &sub.EndsAt, &sub.CreatedAt, &sub.UpdatedAt,
		&school.Name, &plan.Name)
	if err != nil {
		return nil, fmt.Errorf("error scanning subscription row: %w", err)
	}
	school.ID = sub.SchoolID
	plan.ID = sub.PlanID
	sub.School = &school
	sub.Plan = &plan
	return &sub, nil
}

// List returns a page of subscriptions with their school and plan names.
func (r *SubscriptionRepository) List(ctx context.Context, filter SubscriptionFilter) ([]*models.Subscription, int64, error) {
	base := subscriptionSelect(r.sb)
	countQ := r.sb.Select("COUNT(*)").
		From("subscriptions sub").
		Join("schools s ON s.id = sub.school_id").
		Join("plans p ON p.id = sub.plan_id").
		Where("sub.deleted_at IS NULL")

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"s.name": like},
			squirrel.ILike{"p.name": like},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.Status != nil && *filter.Status != "" {
		base = base.Where(squirrel.Eq{"sub.status": *filter.Status})
		countQ = countQ.Where(squirrel.Eq{"sub.status": *filter.Status})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build subscription count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting subscriptions: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("sub.created_at DESC", "sub.id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build subscription list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, 0, err
		}
		subscriptions = append(subscriptions, sub)
	}
	return subscriptions, total, rows.Err()
}
