package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/auth"
)

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenRepo) WithTx(tx pgx.Tx) repositories.ITokenRepository { return f }

func (f *fakeTokenRepo) CreateToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	copied := *token
	f.tokens[token.Token] = &copied
	return nil
}

func (f *fakeTokenRepo) GetTokenByValue(ctx context.Context, value string) (*models.RefreshToken, error) {
	if token, ok := f.tokens[value]; ok {
		copied := *token
		return &copied, nil
	}
	return nil, apperrors.ErrTokenNotFound
}

func (f *fakeTokenRepo) RevokeToken(ctx context.Context, id uuid.UUID) error {
	for _, token := range f.tokens {
		if token.ID == id {
			now := time.Now()
			token.RevokedAt = &now
			return nil
		}
	}
	return apperrors.ErrTokenNotFound
}

func (f *fakeTokenRepo) RevokeAllForIdentity(ctx context.Context, identityID uuid.UUID) error {
	now := time.Now()
	for _, token := range f.tokens {
		if token.IdentityID == identityID {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

type authFixture struct {
	service    *AuthService
	identities *fakeIdentityRepo
	roles      *fakeRoleRepo
	tokens     *fakeTokenRepo
	identity   *models.Identity
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	identities := newFakeIdentityRepo()
	roles := newFakeRoleRepo()
	tokens := newFakeTokenRepo()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	hash, err := auth.HashPassword("supersecret1")
	require.NoError(t, err)

	email := "alice@example.com"
	identity := &models.Identity{
		FullName:     "Alice Souza",
		Email:        &email,
		PasswordHash: hash,
		Active:       true,
	}
	require.NoError(t, identities.Create(context.Background(), identity))
	require.NoError(t, roles.AssignRole(context.Background(), identity.ID, models.RoleSchoolAdmin))

	return &authFixture{
		service:    NewAuthService(identities, roles, tokens, jwtService),
		identities: identities,
		roles:      roles,
		tokens:     tokens,
		identity:   identity,
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// The refresh token is persisted for later rotation
	_, err = f.tokens.GetTokenByValue(context.Background(), resp.RefreshToken)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.identity.Active = false
	require.NoError(t, f.identities.Update(context.Background(), f.identity))

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.service.Login(ctx, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	refreshed, err := f.service.RefreshToken(ctx, &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked and cannot be used again
	_, err = f.service.RefreshToken(ctx, &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshTokenUnknown(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: uuid.NewString(),
	})
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestLogoutRevokesAll(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.service.Login(ctx, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, f.identity.ID))

	_, err = f.service.RefreshToken(ctx, &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestGetProfile(t *testing.T) {
	f := newAuthFixture(t)

	profile, err := f.service.GetProfile(context.Background(), f.identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Souza", profile.FullName)
	assert.Equal(t, []string{models.RoleSchoolAdmin}, profile.Roles)
}

func TestCheckCPF(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	cpf := "52998224725"
	f.identity.CPF = &cpf
	require.NoError(t, f.identities.Update(ctx, f.identity))

	resp, err := f.service.CheckCPF(ctx, "529.982.247-25")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.True(t, resp.Exists)

	resp, err = f.service.CheckCPF(ctx, "11144477735")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.False(t, resp.Exists)

	resp, err = f.service.CheckCPF(ctx, "not-a-cpf")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.False(t, resp.Exists)
}
