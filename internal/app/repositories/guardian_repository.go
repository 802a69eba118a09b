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

// IGuardianRepository defines guardian profile database operations.
type IGuardianRepository interface {
	WithTx(tx pgx.Tx) IGuardianRepository
	GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Guardian, error)
	ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error)
	Create(ctx context.Context, guardian *models.Guardian) error
	Update(ctx context.Context, guardian *models.Guardian) error
	List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.Guardian, int64, error)
	SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error
	LinkStudent(ctx context.Context, guardianID, studentID uuid.UUID) error
	GetStudents(ctx context.Context, schoolID, guardianID uuid.UUID) ([]*models.Student, error)
}

// GuardianRepository handles guardian database operations
type GuardianRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewGuardianRepository creates a new GuardianRepository
func NewGuardianRepository(db Querier) *GuardianRepository {
	return &GuardianRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *GuardianRepository) WithTx(tx pgx.Tx) IGuardianRepository {
	return &GuardianRepository{db: tx, sb: r.sb}
}

func guardianSelect(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(
		"g.id", "g.school_id", "g.identity_id", "g.relationship",
		"g.profession", "g.created_at", "g.updated_at",
		"i.id", "i.full_name", "i.cpf", "i.email", "i.phone",
		"i.password_hash", "i.active", "i.last_login_at", "i.created_at", "i.updated_at").
		From("guardians g").
		Join("identities i ON i.id = g.identity_id").
		Where("g.deleted_at IS NULL")
}

func scanGuardian(row pgx.Row) (*models.Guardian, error) {
	var guardian models.Guardian
	var identity models.Identity
	err := row.Scan(
		&guardian.ID, &guardian.SchoolID, &guardian.IdentityID, &guardian.Relationship,
		&guardian.Profession, &guardian.CreatedAt, &guardian.UpdatedAt,
		&identity.ID, &identity.FullName, &identity.CPF, &identity.Email, &identity.Phone,
		&identity.PasswordHash, &identity.Active, &identity.LastLoginAt,
		&identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGuardianNotFound
		}
		return nil, fmt.Errorf("error scanning guardian row: %w", err)
	}
	guardian.Identity = &identity
	return &guardian, nil
}

// GetByID retrieves a guardian within a school, with its identity loaded.
func (r *GuardianRepository) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Guardian, error) {
	sql, args, err := guardianSelect(r.sb).
		Where(squirrel.Eq{"g.school_id": schoolID, "g.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build guardian query: %w", err)
	}
	return scanGuardian(r.db.QueryRow(ctx, sql, args...))
}

// ExistsForIdentity reports whether the identity already holds a guardian
// profile in the school.
func (r *GuardianRepository) ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM guardians
			WHERE school_id = $1 AND identity_id = $2 AND deleted_at IS NULL)`,
		schoolID, identityID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking guardian existence: %w", err)
	}
	return exists, nil
}

// Create inserts a guardian profile.
func (r *GuardianRepository) Create(ctx context.Context, guardian *models.Guardian) error {
	if guardian.ID == uuid.Nil {
		guardian.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("guardians").
		Columns("id", "school_id", "identity_id", "relationship", "profession").
		Values(guardian.ID, guardian.SchoolID, guardian.IdentityID,
			guardian.Relationship, guardian.Profession).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create guardian query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&guardian.CreatedAt, &guardian.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error creating guardian: %w", err)
	}
	return nil
}

// Update persists the mutable guardian fields within a school.
func (r *GuardianRepository) Update(ctx context.Context, guardian *models.Guardian) error {
	sql, args, err := r.sb.Update("guardians").
		Set("relationship", guardian.Relationship).
		Set("profession", guardian.Profession).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": guardian.ID, "school_id": guardian.SchoolID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update guardian query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating guardian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGuardianNotFound
	}
	return nil
}

// List returns a page of guardians in a school plus the total count.
func (r *GuardianRepository) List(ctx context.Context, schoolID uuid.UUID, filter ListFilter) ([]*models.Guardian, int64, error) {
	base := guardianSelect(r.sb).Where(squirrel.Eq{"g.school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").
		From("guardians g").
		Join("identities i ON i.id = g.identity_id").
		Where("g.deleted_at IS NULL").
		Where(squirrel.Eq{"g.school_id": schoolID})

	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"i.full_name": like},
			squirrel.ILike{"i.email": like},
			squirrel.ILike{"i.cpf": like},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.Active != nil {
		base = base.Where(squirrel.Eq{"i.active": *filter.Active})
		countQ = countQ.Where(squirrel.Eq{"i.active": *filter.Active})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build guardian count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting guardians: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("i.full_name", "g.id").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build guardian list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing guardians: %w", err)
	}
	defer rows.Close()

	var guardians []*models.Guardian
	for rows.Next() {
		guardian, err := scanGuardian(rows)
		if err != nil {
			return nil, 0, err
		}
		guardians = append(guardians, guardian)
	}
	return guardians, total, rows.Err()
}

// SoftDelete marks a guardian as deleted without removing the row.
func (r *GuardianRepository) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE guardians SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting guardian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGuardianNotFound
	}
	return nil
}

// LinkStudent associates a guardian with a student. Linking twice is a no-op.
func (r *GuardianRepository) LinkStudent(ctx context.Context, guardianID, studentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO guardian_students (guardian_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (guardian_id, student_id) DO NOTHING`,
		guardianID, studentID)
	if err != nil {
		return fmt.Errorf("error linking student to guardian: %w", err)
	}
	return nil
}

// GetStudents lists the students linked to a guardian within a school.
func (r *GuardianRepository) GetStudents(ctx context.Context, schoolID, guardianID uuid.UUID) ([]*models.Student, error) {
	sql, args, err := studentSelect(r.sb).
		Join("guardian_students gs ON gs.student_id = s.id").
		Where(squirrel.Eq{"gs.guardian_id": guardianID, "s.school_id": schoolID}).
		OrderBy("i.full_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build guardian students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing guardian students: %w", err)
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
