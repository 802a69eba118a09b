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

// IStudentRepository defines student profile database operations. Every
// method takes the school explicitly; there is no ambient tenant.
type IStudentRepository interface {
	WithTx(tx pgx.Tx) IStudentRepository
	GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Student, error)
	GetByIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (*models.Student, error)
	ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error)
	EnrollmentNumberExists(ctx context.Context, schoolID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.Student, int64, error)
	GetByIDs(ctx context.Context, schoolID uuid.UUID, ids []uuid.UUID) ([]*models.Student, error)
	SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StudentRepository) WithTx(tx pgx.Tx) IStudentRepository {
	return &StudentRepository{db: tx, sb: r.sb}
}

func studentSelect(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(
		"s.id", "s.school_id", "s.identity_id", "s.enrollment_number",
		"s.grade", "s.section", "s.birth_date", "s.enrolled_at",
		"s.medical_notes", "s.active", "s.created_at", "s.updated_at",
		"i.id", "i.full_name", "i.cpf", "i.email", "i.phone",
		"i.password_hash", "i.active", "i.last_login_at", "i.created_at", "i.updated_at").
		From("students s").
		Join("identities i ON i.id = s.identity_id").
		Where("s.deleted_at IS NULL")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var identity models.Identity
	err := row.Scan(
		&student.ID, &student.SchoolID, &student.IdentityID, &student.EnrollmentNumber,
		&student.Grade, &student.Section, &student.BirthDate, &student.EnrolledAt,
		&student.MedicalNotes, &student.Active, &student.CreatedAt, &student.UpdatedAt,
		&identity.ID, &identity.FullName, &identity.CPF, &identity.Email, &identity.Phone,
		&identity.PasswordHash, &identity.Active, &identity.LastLoginAt,
		&identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student row: %w", err)
	}
	student.Identity = &identity
	return &student, nil
}

// GetByID retrieves a student within a school, with its identity loaded.
func (r *StudentRepository) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Student, error) {
	sql, args, err := studentSelect(r.sb).
		Where(squirrel.Eq{"s.school_id": schoolID, "s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}
	return scanStudent(r.db.QueryRow(ctx, sql, args...))
}

// GetByIdentity retrieves the student profile a given identity holds in a school.
func (r *StudentRepository) GetByIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (*models.Student, error) {
	sql, args, err := studentSelect(r.sb).
		Where(squirrel.Eq{"s.school_id": schoolID, "s.identity_id": identityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}
	return scanStudent(r.db.QueryRow(ctx, sql, args...))
}

// ExistsForIdentity reports whether the identity already holds a student
// profile in the school.
func (r *StudentRepository) ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM students
			WHERE school_id = $1 AND identity_id = $2 AND deleted_at IS NULL)`,
		schoolID, identityID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// EnrollmentNumberExists checks enrollment number uniqueness within a school.
// excludeID lets updates ignore the row being updated.
func (r *StudentRepository) EnrollmentNumberExists(ctx context.Context, schoolID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	qb := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"school_id": schoolID, "enrollment_number": number}).
		Where("deleted_at IS NULL")
	if excludeID != nil {
		qb = qb.Where(squirrel.NotEq{"id": *excludeID})
	}

	sql, args, err := qb.Prefix("SELECT EXISTS(").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment number query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking enrollment number: %w", err)
	}
	return exists, nil
}

// Create inserts a student profile. Unique violations are mapped per
// constraint: a duplicate enrollment number and a duplicate (school,
// identity) pair are distinct failures for the caller.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("students").
		Columns("id", "school_id", "identity_id", "enrollment_number", "grade",
			"section", "birth_date", "enrolled_at", "medical_notes", "active").
		Values(student.ID, student.SchoolID, student.IdentityID, student.EnrollmentNumber,
			student.Grade, student.Section, student.BirthDate, student.EnrolledAt,
			student.MedicalNotes, student.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return mapStudentConstraint(err, "error creating student")
	}
	return nil
}

// Update persists the mutable student fields within a school.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("enrollment_number", student.EnrollmentNumber).
		Set("grade", student.Grade).
		Set("section", student.Section).
		Set("birth_date", student.BirthDate).
		Set("enrolled_at", student.EnrolledAt).
		Set("medical_notes", student.MedicalNotes).
		Set("active", student.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": student.ID, "school_id": student.SchoolID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapStudentConstraint(err, "error updating student")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// List returns a page of students in a school, filtered by search term and
// active flag, plus the unfiltered-by-page total.
func (r *StudentRepository) List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.Student, int64, error) {
	base := studentSelect(r.sb).Where(squirrel.Eq{"s.school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").
		From("students s").
		Join("identities i ON i.id = s.identity_id").
		Where("s.deleted_at IS NULL").
		Where(squirrel.Eq{"s.school_id": schoolID})

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"i.full_name": like},
			squirrel.ILike{"s.enrollment_number": like},
			squirrel.ILike{"i.email": like},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.Active != nil {
		base = base.Where(squirrel.Eq{"s.active": *filter.Active})
		countQ = countQ.Where(squirrel.Eq{"s.active": *filter.Active})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("i.full_name", "s.id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	return students, total, rows.Err()
}

// GetByIDs loads the given students within a school. Missing ids are simply
// absent from the result; callers compare lengths when that matters.
func (r *StudentRepository) GetByIDs(ctx context.Context, schoolID uuid.UUID, ids []uuid.UUID) ([]*models.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := studentSelect(r.sb).
		Where(squirrel.Eq{"s.school_id": schoolID, "s.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build students-by-ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading students by ids: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// SoftDelete marks a student as deleted without removing the row.
func (r *StudentRepository) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func mapStudentConstraint(err error, msg string) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "students_school_enrollment_number_key"):
		return apperrors.ErrDuplicateEnrollmentNumber
	case dberrors.IsDuplicateConstraintError(err, "students_school_identity_key"):
		return apperrors.ErrPersistenceConflict
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrPersistenceConflict
	}
	return fmt.Errorf("%s: %w", msg, err)
}
