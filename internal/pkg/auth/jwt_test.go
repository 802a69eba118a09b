package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolabr/escolar/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func testIdentity() *models.Identity {
	email := "alice@example.com"
	return &models.Identity{
		ID:       uuid.New(),
		FullName: "Alice Souza",
		Email:    &email,
		Active:   true,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := testJWTService(time.Hour)
	identity := testIdentity()

	access, refresh, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(identity, []string{models.RoleStudent})
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := service.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, identity.ID.String(), claims.IdentityID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{models.RoleStudent}, claims.Roles)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	identity := testIdentity()
	access, _, _, _, err := testJWTService(time.Hour).GenerateTokenPair(identity, nil)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	service := testJWTService(-time.Minute)
	access, _, _, _, err := service.GenerateTokenPair(testIdentity(), nil)
	require.NoError(t, err)

	_, err = service.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("abc123")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("supersecret1")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret1", hash)

	assert.True(t, CheckPassword(hash, "supersecret1"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
