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

// AssignmentFilter filters a teacher's exercise or exam listing.
type AssignmentFilter struct {
	Search  *string
	ClassID *uuid.UUID
	Subject *string
	Offset  uint64
	Limit   int
}

// IExerciseRepository defines exercise database operations. Every method is
// scoped to the school and the owning teacher.
type IExerciseRepository interface {
	WithTx(tx pgx.Tx) IExerciseRepository
	GetByID(ctx context.Context, schoolID, teacherID, id uuid.UUID) (*models.Exercise, error)
	Create(ctx context.Context, exercise *models.Exercise) error
	Update(ctx context.Context, exercise *models.Exercise) error
	List(ctx context.Context, schoolID, teacherID uuid.UUID, filter AssignmentFilter) ([]*models.Exercise, int64, error)
	SoftDelete(ctx context.Context, schoolID, teacherID, id uuid.UUID) error
}

// ExerciseRepository handles exercise database operations
type ExerciseRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewExerciseRepository creates a new ExerciseRepository
func NewExerciseRepository(db Querier) *ExerciseRepository {
	return &ExerciseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ExerciseRepository) WithTx(tx pgx.Tx) IExerciseRepository {
	return &ExerciseRepository{db: tx, sb: r.sb}
}

func exerciseSelect(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(
		"e.id", "e.school_id", "e.teacher_id", "e.class_id", "e.subject",
		"e.title", "e.description", "e.due_date", "e.attachment_url",
		"e.created_at", "e.updated_at", "c.name").
		From("exercises e").
		Join("classes c ON c.id = e.class_id").
		Where("e.deleted_at IS NULL")
}

func scanExercise(row pgx.Row) (*models.Exercise, error) {
	var exercise models.Exercise
	var class models.SchoolClass
	err := row.Scan(&exercise.ID, &exercise.SchoolID, &exercise.TeacherID,
		&exercise.ClassID, &exercise.Subject, &exercise.Title,
		&exercise.Description, &exercise.DueDate, &exercise.AttachmentURL,
		&exercise.CreatedAt, &exercise.UpdatedAt, &class.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("error scanning exercise row: %w", err)
	}
	class.ID = exercise.ClassID
	exercise.Class = &class
	return &exercise, nil
}

// GetByID retrieves a teacher's exercise within a school.
func (r *ExerciseRepository) GetByID(ctx context.Context, schoolID, teacherID, id uuid.UUID) (*models.Exercise, error) {
	sql, args, err := exerciseSelect(r.sb).
		Where(squirrel.Eq{"e.school_id": schoolID, "e.teacher_id": teacherID, "e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build exercise query: %w", err)
	}
	return scanExercise(r.db.QueryRow(ctx, sql, args...))
}

// Create inserts an exercise.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("exercises").
		Columns("id", "school_id", "teacher_id", "class_id", "subject",
			"title", "description", "due_date", "attachment_url").
		Values(exercise.ID, exercise.SchoolID, exercise.TeacherID,
			exercise.ClassID, exercise.Subject, exercise.Title,
			exercise.Description, exercise.DueDate, exercise.AttachmentURL).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create exercise query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exercise.CreatedAt, &exercise.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error creating exercise: %w", err)
	}
	return nil
}

// Update persists the mutable exercise fields, scoped to the owning teacher.
func (r *ExerciseRepository) Update(ctx context.Context, exercise *models.Exercise) error {
	sql, args, err := r.sb.Update("exercises").
		Set("class_id", exercise.ClassID).
		Set("subject", exercise.Subject).
		Set("title", exercise.Title).
		Set("description", exercise.Description).
		Set("due_date", exercise.DueDate).
		Set("attachment_url", exercise.AttachmentURL).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{
			"id":         exercise.ID,
			"school_id":  exercise.SchoolID,
			"teacher_id": exercise.TeacherID,
		}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exercise query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExerciseNotFound
	}
	return nil
}

// List returns a page of a teacher's exercises plus the total count.
func (r *ExerciseRepository) List(ctx context.Context, schoolID, teacherID uuid.UUID, filter AssignmentFilter) ([]*models.Exercise, int64, error) {
	scope := squirrel.Eq{"e.school_id": schoolID, "e.teacher_id": teacherID}
	base := exerciseSelect(r.sb).Where(scope)
	countQ := r.sb.Select("COUNT(*)").
		From("exercises e").
		Where("e.deleted_at IS NULL").
		Where(scope)

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"e.title": like},
			squirrel.ILike{"e.subject": like},
			squirrel.ILike{"e.description": like},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.ClassID != nil {
		base = base.Where(squirrel.Eq{"e.class_id": *filter.ClassID})
		countQ = countQ.Where(squirrel.Eq{"e.class_id": *filter.ClassID})
	}
	if filter.Subject != nil && *filter.Subject != "" {
		base = base.Where(squirrel.Eq{"e.subject": *filter.Subject})
		countQ = countQ.Where(squirrel.Eq{"e.subject": *filter.Subject})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build exercise count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting exercises: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("e.due_date DESC", "e.created_at DESC", "e.id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build exercise list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, 0, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, total, rows.Err()
}

// SoftDelete marks a teacher's exercise as deleted without removing the row.
func (r *ExerciseRepository) SoftDelete(ctx context.Context, schoolID, teacherID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE exercises SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND school_id = $2 AND teacher_id = $3 AND deleted_at IS NULL`,
		id, schoolID, teacherID)
	if err != nil {
		return fmt.Errorf("error deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExerciseNotFound
	}
	return nil
}
