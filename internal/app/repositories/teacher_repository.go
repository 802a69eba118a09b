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

// ITeacherRepository defines teacher profile database operations.
type ITeacherRepository interface {
	WithTx(tx pgx.Tx) ITeacherRepository
	GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Teacher, error)
	ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error)
	RegistrationNumberExists(ctx context.Context, schoolID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.Teacher, int64, error)
	SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error
}

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db Querier) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TeacherRepository) WithTx(tx pgx.Tx) ITeacherRepository {
	return &TeacherRepository{db: tx, sb: r.sb}
}

func teacherSelect(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(
		"t.id", "t.school_id", "t.identity_id", "t.registration_number",
		"t.subjects", "t.specialization", "t.active", "t.created_at", "t.updated_at",
		"i.id", "i.full_name", "i.cpf", "i.email", "i.phone",
		"i.password_hash", "i.active", "i.last_login_at", "i.created_at", "i.updated_at").
		From("teachers t").
		Join("identities i ON i.id = t.identity_id").
		Where("t.deleted_at IS NULL")
}

// scanTeacher reads a teacher row. The subjects column is a Postgres text[],
// which pgx maps to []string directly.
func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var teacher models.Teacher
	var identity models.Identity
	err := row.Scan(
		&teacher.ID, &teacher.SchoolID, &teacher.IdentityID, &teacher.RegistrationNumber,
		&teacher.Subjects, &teacher.Specialization, &teacher.Active,
		&teacher.CreatedAt, &teacher.UpdatedAt,
		&identity.ID, &identity.FullName, &identity.CPF, &identity.Email, &identity.Phone,
		&identity.PasswordHash, &identity.Active, &identity.LastLoginAt,
		&identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error scanning teacher row: %w", err)
	}
	teacher.Identity = &identity
	return &teacher, nil
}

// GetByID retrieves a teacher within a school, with its identity loaded.
func (r *TeacherRepository) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Teacher, error) {
	sql, args, err := teacherSelect(r.sb).
		Where(squirrel.Eq{"t.school_id": schoolID, "t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build teacher query: %w", err)
	}
	return scanTeacher(r.db.QueryRow(ctx, sql, args...))
}

// ExistsForIdentity reports whether the identity already holds a teacher
// profile in the school.
func (r *TeacherRepository) ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM teachers
			WHERE school_id = $1 AND identity_id = $2 AND deleted_at IS NULL)`,
		schoolID, identityID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher existence: %w", err)
	}
	return exists, nil
}

// RegistrationNumberExists checks registration number uniqueness within a school.
func (r *TeacherRepository) RegistrationNumberExists(ctx context.Context, schoolID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	qb := r.sb.Select("1").
		From("teachers").
		Where(squirrel.Eq{"school_id": schoolID, "registration_number": number}).
		Where("deleted_at IS NULL")
	if excludeID != nil {
		qb = qb.Where(squirrel.NotEq{"id": *excludeID})
	}

	sql, args, err := qb.Prefix("SELECT EXISTS(").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build registration number query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking registration number: %w", err)
	}
	return exists, nil
}

// Create inserts a teacher profile.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("teachers").
		Columns("id", "school_id", "identity_id", "registration_number",
			"subjects", "specialization", "active").
		Values(teacher.ID, teacher.SchoolID, teacher.IdentityID, teacher.RegistrationNumber,
			teacher.Subjects, teacher.Specialization, teacher.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		return mapTeacherConstraint(err, "error creating teacher")
	}
	return nil
}

// Update persists the mutable teacher fields within a school.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		Set("registration_number", teacher.RegistrationNumber).
		Set("subjects", teacher.Subjects).
		Set("specialization", teacher.Specialization).
		Set("active", teacher.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": teacher.ID, "school_id": teacher.SchoolID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapTeacherConstraint(err, "error updating teacher")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// List returns a page of teachers in a school plus the total count.
func (r *TeacherRepository) List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.Teacher, int64, error) {
	base := teacherSelect(r.sb).Where(squirrel.Eq{"t.school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").
		From("teachers t").
		Join("identities i ON i.id = t.identity_id").
		Where("t.deleted_at IS NULL").
		Where(squirrel.Eq{"t.school_id": schoolID})

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"i.full_name": like},
			squirrel.ILike{"t.registration_number": like},
			squirrel.ILike{"i.email": like},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.Active != nil {
		base = base.Where(squirrel.Eq{"t.active": *filter.Active})
		countQ = countQ.Where(squirrel.Eq{"t.active": *filter.Active})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build teacher count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teachers: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("i.full_name", "t.id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build teacher list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, total, rows.Err()
}

// SoftDelete marks a teacher as deleted without removing the row.
func (r *TeacherRepository) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE teachers SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

func mapTeacherConstraint(err error, msg string) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "teachers_school_registration_number_key"):
		return apperrors.ErrDuplicateRegistrationNumber
	case dberrors.IsDuplicateConstraintError(err, "teachers_school_identity_key"):
		return apperrors.ErrPersistenceConflict
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrPersistenceConflict
	}
	return fmt.Errorf("%s: %w", msg, err)
}
