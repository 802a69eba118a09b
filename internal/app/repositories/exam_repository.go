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

// IExamRepository defines exam database operations, scoped like exercises to
// the school and the owning teacher.
type IExamRepository interface {
	WithTx(tx pgx.Tx) IExamRepository
	GetByID(ctx context.Context, schoolID, teacherID, id uuid.UUID) (*models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, exam *models.Exam) error
	List(ctx context.Context, schoolID, teacherID uuid.UUID, filter AssignmentFilter) ([]*models.Exam, int64, error)
	SoftDelete(ctx context.Context, schoolID, teacherID, id uuid.UUID) error
}

// ExamRepository handles exam database operations
type ExamRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db Querier) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ExamRepository) WithTx(tx pgx.Tx) IExamRepository {
	return &ExamRepository{db: tx, sb: r.sb}
}

func examSelect(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(
		"e.id", "e.school_id", "e.teacher_id", "e.class_id", "e.subject",
		"e.title", "e.description", "e.exam_date", "e.start_time", "e.room",
		"e.duration_minutes", "e.created_at", "e.updated_at", "c.name").
		From("exams e").
		Join("classes c ON c.id = e.class_id").
		Where("e.deleted_at IS NULL")
}

func scanExam(row pgx.Row) (*models.Exam, error) {
	var exam models.Exam
	var class models.SchoolClass
	err := row.Scan(&exam.ID, &exam.SchoolID, &exam.TeacherID, &exam.ClassID,
		&exam.Subject, &exam.Title, &exam.Description, &exam.ExamDate,
		&exam.StartTime, &exam.Room, &exam.DurationMinutes,
		&exam.CreatedAt, &exam.UpdatedAt, &class.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error scanning exam row: %w", err)
	}
	class.ID = exam.ClassID
	exam.Class = &class
	return &exam, nil
}

// GetByID retrieves a teacher's exam within a school.
func (r *ExamRepository) GetByID(ctx context.Context, schoolID, teacherID, id uuid.UUID) (*models.Exam, error) {
	sql, args, err := examSelect(r.sb).
		Where(squirrel.Eq{"e.school_id": schoolID, "e.teacher_id": teacherID, "e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build exam query: %w", err)
	}
	return scanExam(r.db.QueryRow(ctx, sql, args...))
}

// Create inserts an exam.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	if exam.ID == uuid.Nil {
		exam.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("exams").
		Columns("id", "school_id", "teacher_id", "class_id", "subject", "title",
			"description", "exam_date", "start_time", "room", "duration_minutes").
		Values(exam.ID, exam.SchoolID, exam.TeacherID, exam.ClassID,
			exam.Subject, exam.Title, exam.Description, exam.ExamDate,
			exam.StartTime, exam.Room, exam.DurationMinutes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create exam query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exam.CreatedAt, &exam.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error creating exam: %w", err)
	}
	return nil
}

// Update persists the mutable exam fields, scoped to the owning teacher.
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	sql, args, err := r.sb.Update("exams").
		Set("class_id", exam.ClassID).
		Set("subject", exam.Subject).
		Set("title", exam.Title).
		Set("description", exam.Description).
		Set("exam_date", exam.ExamDate).
		Set("start_time", exam.StartTime).
		Set("room", exam.Room).
		Set("duration_minutes", exam.DurationMinutes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{
			"id":         exam.ID,
			"school_id":  exam.SchoolID,
			"teacher_id": exam.TeacherID,
		}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exam query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// List returns a page of a teacher's exams plus the total count.
func (r *ExamRepository) List(ctx context.Context, schoolID, teacherID uuid.UUID, filter AssignmentFilter) ([]*models.Exam, int64, error) {
	scope := squirrel.Eq{"e.school_id": schoolID, "e.teacher_id": teacherID}
	base := examSelect(r.sb).Where(scope)
	countQ := r.sb.Select("COUNT(*)").
		From("exams e").
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
		return nil, 0, fmt.Errorf("failed to build exam count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting exams: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("e.exam_date DESC", "e.created_at DESC", "e.id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build exam list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing exams: %w", err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, 0, err
		}
		exams = append(exams, exam)
	}
	return exams, total, rows.Err()
}

// SoftDelete marks a teacher's exam as deleted without removing the row.
func (r *ExamRepository) SoftDelete(ctx context.Context, schoolID, teacherID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE exams SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND school_id = $2 AND teacher_id = $3 AND deleted_at IS NULL`,
		id, schoolID, teacherID)
	if err != nil {
		return fmt.Errorf("error deleting exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}
