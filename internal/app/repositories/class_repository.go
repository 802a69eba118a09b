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

// IClassRepository defines class and class-enrollment database operations.
type IClassRepository interface {
	WithTx(tx pgx.Tx) IClassRepository
	GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.SchoolClass, error)
	Create(ctx context.Context, class *models.SchoolClass) error
	Update(ctx context.Context, class *models.SchoolClass) error
	List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.SchoolClass, int64, error)
	SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error
	GetActiveEnrollment(ctx context.Context, schoolID, studentID uuid.UUID) (*models.ClassEnrollment, error)
	CloseActiveEnrollments(ctx context.Context, schoolID, studentID uuid.UUID) error
	CreateEnrollment(ctx context.Context, enrollment *models.ClassEnrollment) error
}

// ClassRepository handles class database operations
type ClassRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db Querier) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ClassRepository) WithTx(tx pgx.Tx) IClassRepository {
	return &ClassRepository{db: tx, sb: r.sb}
}

var classColumns = []string{
	"id", "school_id", "name", "grade", "letter", "academic_year",
	"active", "created_at", "updated_at",
}

func scanClass(row pgx.Row) (*models.SchoolClass, error) {
	var class models.SchoolClass
	err := row.Scan(&class.ID, &class.SchoolID, &class.Name, &class.Grade,
		&class.Letter, &class.AcademicYear, &class.Active,
		&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error scanning class row: %w", err)
	}
	return &class, nil
}

// GetByID retrieves a class within a school.
func (r *ClassRepository) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.SchoolClass, error) {
	sql, args, err := r.sb.Select(classColumns...).
		From("classes").
		Where(squirrel.Eq{"school_id": schoolID, "id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class query: %w", err)
	}
	return scanClass(r.db.QueryRow(ctx, sql, args...))
}

// Create inserts a class.
func (r *ClassRepository) Create(ctx context.Context, class *models.SchoolClass) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("classes").
		Columns("id", "school_id", "name", "grade", "letter", "academic_year", "active").
		Values(class.ID, class.SchoolID, class.Name, class.Grade, class.Letter,
			class.AcademicYear, class.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create class query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// Update persists the mutable class fields within a school.
func (r *ClassRepository) Update(ctx context.Context, class *models.SchoolClass) error {
	sql, args, err := r.sb.Update("classes").
		Set("name", class.Name).
		Set("grade", class.Grade).
		Set("letter", class.Letter).
		Set("academic_year", class.AcademicYear).
		Set("active", class.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": class.ID, "school_id": class.SchoolID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// List returns a page of classes in a school plus the total count.
func (r *ClassRepository) List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.SchoolClass, int64, error) {
	base := r.sb.Select(classColumns...).
		From("classes").
		Where(squirrel.Eq{"school_id": schoolID}).
		Where("deleted_at IS NULL")
	countQ := r.sb.Select("COUNT(*)").
		From("classes").
		Where(squirrel.Eq{"school_id": schoolID}).
		Where("deleted_at IS NULL")

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"grade": like},
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
		return nil, 0, fmt.Errorf("failed to build class count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting classes: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("academic_year DESC", "name", "id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build class list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.SchoolClass
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, class)
	}
	return classes, total, rows.Err()
}

// SoftDelete marks a class as deleted without removing the row.
func (r *ClassRepository) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE classes SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// GetActiveEnrollment returns the student's open class enrollment in the
// school, or ErrResourceNotFound when there is none.
func (r *ClassRepository) GetActiveEnrollment(ctx context.Context, schoolID, studentID uuid.UUID) (*models.ClassEnrollment, error) {
	sql, args, err := r.sb.Select("id", "school_id", "class_id", "student_id",
		"status", "created_at", "updated_at").
		From("class_enrollments").
		Where(squirrel.Eq{
			"school_id":  schoolID,
			"student_id": studentID,
			"status":     models.ClassEnrollmentActive,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active enrollment query: %w", err)
	}

	var e models.ClassEnrollment
	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.SchoolID, &e.ClassID,
		&e.StudentID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading active enrollment: %w", err)
	}
	return &e, nil
}

// CloseActiveEnrollments closes every open class enrollment the student has
// in the school. Closing when none are open is a no-op.
func (r *ClassRepository) CloseActiveEnrollments(ctx context.Context, schoolID, studentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE class_enrollments SET status = $1, updated_at = now()
		WHERE school_id = $2 AND student_id = $3 AND status = $4`,
		models.ClassEnrollmentClosed, schoolID, studentID, models.ClassEnrollmentActive)
	if err != nil {
		return fmt.Errorf("error closing class enrollments: %w", err)
	}
	return nil
}

// CreateEnrollment opens a class enrollment. A partial unique index keeps at
// most one active enrollment per student per school.
func (r *ClassRepository) CreateEnrollment(ctx context.Context, enrollment *models.ClassEnrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	if enrollment.Status == "" {
		enrollment.Status = models.ClassEnrollmentActive
	}

	sql, args, err := r.sb.Insert("class_enrollments").
		Columns("id", "school_id", "class_id", "student_id", "status").
		Values(enrollment.ID, enrollment.SchoolID, enrollment.ClassID,
			enrollment.StudentID, enrollment.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "class_enrollments_active_student_key") {
			return apperrors.ErrAlreadyInClass
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error creating class enrollment: %w", err)
	}
	return nil
}
