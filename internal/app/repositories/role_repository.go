package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IRoleRepository defines role catalog and assignment operations.
type IRoleRepository interface {
	WithTx(tx pgx.Tx) IRoleRepository
	EnsureRole(ctx context.Context, name string) error
	AssignRole(ctx context.Context, identityID uuid.UUID, roleName string) error
	HasAnyRole(ctx context.Context, identityID uuid.UUID) (bool, error)
	GetRoleNames(ctx context.Context, identityID uuid.UUID) ([]string, error)
}

// RoleRepository handles role database operations
type RoleRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db Querier) *RoleRepository {
	return &RoleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *RoleRepository) WithTx(tx pgx.Tx) IRoleRepository {
	return &RoleRepository{db: tx, sb: r.sb}
}

// EnsureRole inserts a role into the catalog if it is not there yet.
func (r *RoleRepository) EnsureRole(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO roles (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("error ensuring role %s: %w", name, err)
	}
	return nil
}

// AssignRole grants a role to an identity. Re-granting is a no-op.
func (r *RoleRepository) AssignRole(ctx context.Context, identityID uuid.UUID, roleName string) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO identity_roles (identity_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT (identity_id, role_id) DO NOTHING`,
		identityID, roleName)
	if err != nil {
		return fmt.Errorf("error assigning role %s: %w", roleName, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the role was already granted or the catalog is missing the
		// role name. The latter only happens before seeding runs.
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM roles WHERE name = $1)`, roleName).Scan(&exists); err != nil {
			return fmt.Errorf("error checking role %s: %w", roleName, err)
		}
		if !exists {
			return fmt.Errorf("unknown role %q", roleName)
		}
	}
	return nil
}

// HasAnyRole reports whether the identity has at least one role.
func (r *RoleRepository) HasAnyRole(ctx context.Context, identityID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM identity_roles WHERE identity_id = $1)`,
		identityID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking roles for identity: %w", err)
	}
	return exists, nil
}

// GetRoleNames lists the role names granted to an identity.
func (r *RoleRepository) GetRoleNames(ctx context.Context, identityID uuid.UUID) ([]string, error) {
	sql, args, err := r.sb.Select("r.name").
		From("roles r").
		Join("identity_roles ir ON ir.role_id = r.id").
		Where(squirrel.Eq{"ir.identity_id": identityID}).
		OrderBy("r.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build role names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing roles for identity: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning role row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
