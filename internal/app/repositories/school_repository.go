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

// ISchoolRepository defines school database operations.
type ISchoolRepository interface {
	WithTx(tx pgx.Tx) ISchoolRepository
	GetByID(ctx context.Context, id uuid.UUID) (*models.School, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, school *models.School) error
	List(ctx context.Context, filter ListFilter) ([]*models.School, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// SchoolRepository handles school database operations
type SchoolRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db Querier) *SchoolRepository {
	return &SchoolRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *SchoolRepository) WithTx(tx pgx.Tx) ISchoolRepository {
	return &SchoolRepository{db: tx, sb: r.sb}
}

var schoolColumns = []string{"id", "name", "document", "phone", "active", "created_at", "updated_at"}

func scanSchool(row pgx.Row) (*models.School, error) {
	var school models.School
	err := row.Scan(&school.ID, &school.Name, &school.Document, &school.Phone,
		&school.Active, &school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error scanning school row: %w", err)
	}
	return &school, nil
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.School, error) {
	sql, args, err := r.sb.Select(schoolColumns...).
		From("schools").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build school query: %w", err)
	}
	return scanSchool(r.db.QueryRow(ctx, sql, args...))
}

// Create inserts a new school
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	if school.ID == uuid.Nil {
		school.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("schools").
		Columns("id", "name", "document", "phone", "active").
		Values(school.ID, school.Name, school.Document, school.Phone, school.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create school query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSchoolAlreadyExists
		}
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

// Update persists the mutable school fields.
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	sql, args, err := r.sb.Update("schools").
		Set("name", school.Name).
		Set("document", school.Document).
		Set("phone", school.Phone).
		Set("active", school.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": school.ID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update school query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSchoolAlreadyExists
		}
		return fmt.Errorf("error updating school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// List returns a page of schools plus the total count.
func (r *SchoolRepository) List(ctx context.Context, filter ListFilter) ([]*models.School, int64, error) {
	base := r.sb.Select(schoolColumns...).
		From("schools").
		Where("deleted_at IS NULL")
	countQ := r.sb.Select("COUNT(*)").
		From("schools").
		Where("deleted_at IS NULL")

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"document": like},
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
		return nil, 0, fmt.Errorf("failed to build school count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting schools: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("name", "id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build school list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing schools: %w", err)
	}
	defer rows.Close()

	var schools []*models.School
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, 0, err
		}
		schools = append(schools, school)
	}
	return schools, total, rows.Err()
}

// SoftDelete marks a school as deleted without removing the row.
func (r *SchoolRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE schools SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("error deleting school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}
