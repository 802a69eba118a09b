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
)

// ITokenRepository defines refresh token database operations.
type ITokenRepository interface {
	WithTx(tx pgx.Tx) ITokenRepository
	CreateToken(ctx context.Context, token *models.RefreshToken) error
	GetTokenByValue(ctx context.Context, value string) (*models.RefreshToken, error)
	RevokeToken(ctx context.Context, id uuid.UUID) error
	RevokeAllForIdentity(ctx context.Context, identityID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db Querier) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TokenRepository) WithTx(tx pgx.Tx) ITokenRepository {
	return &TokenRepository{db: tx, sb: r.sb}
}

// CreateToken stores a refresh token.
func (r *TokenRepository) CreateToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("id", "identity_id", "token", "expires_at").
		Values(token.ID, token.IdentityID, token.Token, token.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&token.CreatedAt); err != nil {
		return fmt.Errorf("error creating refresh token: %w", err)
	}
	return nil
}

// GetTokenByValue retrieves a refresh token by its opaque value.
func (r *TokenRepository) GetTokenByValue(ctx context.Context, value string) (*models.RefreshToken, error) {
	sql, args, err := r.sb.Select("id", "identity_id", "token", "expires_at", "revoked_at", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build token query: %w", err)
	}

	var token models.RefreshToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(&token.ID, &token.IdentityID,
		&token.Token, &token.ExpiresAt, &token.RevokedAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error loading refresh token: %w", err)
	}
	return &token, nil
}

// RevokeToken marks a refresh token as revoked.
func (r *TokenRepository) RevokeToken(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllForIdentity revokes every live refresh token an identity holds.
func (r *TokenRepository) RevokeAllForIdentity(ctx context.Context, identityID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE identity_id = $1 AND revoked_at IS NULL`, identityID)
	if err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	return nil
}

// DeleteExpired removes tokens past their expiry and returns how many.
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
