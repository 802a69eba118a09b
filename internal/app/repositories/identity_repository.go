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
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// IIdentityRepository defines identity database operations. CPF and email
// lookups back the reconciliation core; AttachToSchool is idempotent.
type IIdentityRepository interface {
	WithTx(tx pgx.Tx) IIdentityRepository
	GetByID(ctx context.Context, id uuid.UUID) (*models.Identity, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Identity, error)
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	CPFExists(ctx context.Context, cpf string) (bool, error)
	Create(ctx context.Context, identity *models.Identity) error
	Update(ctx context.Context, identity *models.Identity) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	AttachToSchool(ctx context.Context, identityID, schoolID uuid.UUID) error
	SchoolsFor(ctx context.Context, identityID uuid.UUID) ([]*models.School, error)
}

// IdentityRepository handles identity database operations
type IdentityRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(db Querier) *IdentityRepository {
	return &IdentityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *IdentityRepository) WithTx(tx pgx.Tx) IIdentityRepository {
	return &IdentityRepository{db: tx, sb: r.sb}
}

var identityColumns = []string{
	"id", "full_name", "cpf", "email", "phone", "password_hash",
	"active", "last_login_at", "created_at", "updated_at",
}

func (r *IdentityRepository) scanIdentity(row pgx.Row) (*models.Identity, error) {
	var identity models.Identity
	err := row.Scan(
		&identity.ID, &identity.FullName, &identity.CPF, &identity.Email,
		&identity.Phone, &identity.PasswordHash, &identity.Active,
		&identity.LastLoginAt, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("error scanning identity row: %w", err)
	}
	return &identity, nil
}

func (r *IdentityRepository) getByColumn(ctx context.Context, column string, value interface{}) (*models.Identity, error) {
	sql, args, err := r.sb.Select(identityColumns...).
		From("identities").
		Where(squirrel.Eq{column: value}).
		Where("deleted_at IS NULL").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build identity query: %w", err)
	}

	return r.scanIdentity(r.db.QueryRow(ctx, sql, args...))
}

// GetByID retrieves an identity by ID
func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByCPF retrieves an identity by its CPF digits
func (r *IdentityRepository) GetByCPF(ctx context.Context, cpf string) (*models.Identity, error) {
	return r.getByColumn(ctx, "cpf", cpf)
}

// GetByEmail retrieves an identity by email
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return r.getByColumn(ctx, "email", email)
}

// CPFExists checks if a CPF is already registered
func (r *IdentityRepository) CPFExists(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM identities WHERE cpf = $1 AND deleted_at IS NULL)`,
		cpf).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking cpf existence: %w", err)
	}
	return exists, nil
}

// Create inserts a new identity. A unique violation on cpf or email means a
// concurrent request created the same person after the resolver's lookup; it
// surfaces as ErrPersistenceConflict.
func (r *IdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("identities").
		Columns("id", "full_name", "cpf", "email", "phone", "password_hash", "active").
		Values(identity.ID, identity.FullName, identity.CPF, identity.Email,
			identity.Phone, identity.PasswordHash, identity.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create identity query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("identityID", identity.ID.String()).Msg("Identity insert lost a uniqueness race")
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error creating identity: %w", err)
	}

	return nil
}

// Update persists the mutable identity fields. The credential is written as
// stored on the model; callers that must not touch it keep the loaded hash.
func (r *IdentityRepository) Update(ctx context.Context, identity *models.Identity) error {
	sql, args, err := r.sb.Update("identities").
		Set("full_name", identity.FullName).
		Set("cpf", identity.CPF).
		Set("email", identity.Email).
		Set("phone", identity.Phone).
		Set("password_hash", identity.PasswordHash).
		Set("active", identity.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": identity.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update identity query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersistenceConflict
		}
		return fmt.Errorf("error updating identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrIdentityNotFound
	}

	return nil
}

// UpdateLastLogin updates the last login time
func (r *IdentityRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE identities SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}
	return nil
}

// AttachToSchool links an identity to a school. Attaching twice is a no-op.
func (r *IdentityRepository) AttachToSchool(ctx context.Context, identityID, schoolID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO identity_schools (identity_id, school_id)
		VALUES ($1, $2)
		ON CONFLICT (identity_id, school_id) DO NOTHING`,
		identityID, schoolID)
	if err != nil {
		return fmt.Errorf("error attaching identity to school: %w", err)
	}
	return nil
}

// SchoolsFor lists the schools an identity is linked to
func (r *IdentityRepository) SchoolsFor(ctx context.Context, identityID uuid.UUID) ([]*models.School, error) {
	sql, args, err := r.sb.Select("s.id", "s.name", "s.document", "s.phone", "s.active", "s.created_at", "s.updated_at").
		From("schools s").
		Join("identity_schools m ON m.school_id = s.id").
		Where(squirrel.Eq{"m.identity_id": identityID}).
		Where("s.deleted_at IS NULL").
		OrderBy("s.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build schools query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing schools for identity: %w", err)
	}
	defer rows.Close()

	var schools []*models.School
	for rows.Next() {
		var school models.School
		if err := rows.Scan(&school.ID, &school.Name, &school.Document, &school.Phone,
			&school.Active, &school.CreatedAt, &school.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning school row: %w", err)
		}
		schools = append(schools, &school)
	}
	return schools, rows.Err()
}
