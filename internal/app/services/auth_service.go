package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/auth"
	"github.com/escolabr/escolar/internal/pkg/logger"
	"github.com/escolabr/escolar/internal/pkg/validation"
)

// AuthService handles authentication against identities.
type AuthService struct {
	identities repositories.IIdentityRepository
	roles      repositories.IRoleRepository
	tokens     repositories.ITokenRepository
	jwt        *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	identities repositories.IIdentityRepository,
	roles repositories.IRoleRepository,
	tokens repositories.ITokenRepository,
	jwt *auth.JWTService,
) *AuthService {
	return &AuthService{
		identities: identities,
		roles:      roles,
		tokens:     tokens,
		jwt:        jwt,
	}
}

// Login verifies the credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	identity, err := s.identities.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrIdentityNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !identity.Active {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(identity.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	roles, err := s.roles.GetRoleNames(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, identity, roles)
	if err != nil {
		return nil, err
	}

	if err := s.identities.UpdateLastLogin(ctx, identity.ID); err != nil {
		logger.Warn().Err(err).Str("identityID", identity.ID.String()).Msg("Failed to record last login")
	}

	return resp, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	stored, err := s.tokens.GetTokenByValue(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	if stored.Revoked() {
		return nil, apperrors.ErrTokenRevoked
	}
	if stored.Expired() {
		return nil, apperrors.ErrTokenExpired
	}

	identity, err := s.identities.GetByID(ctx, stored.IdentityID)
	if err != nil {
		return nil, err
	}
	if !identity.Active {
		return nil, apperrors.ErrAccountDisabled
	}

	roles, err := s.roles.GetRoleNames(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.RevokeToken(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, identity, roles)
}

// Logout revokes every live refresh token the identity holds.
func (s *AuthService) Logout(ctx context.Context, identityID uuid.UUID) error {
	return s.tokens.RevokeAllForIdentity(ctx, identityID)
}

// GetProfile returns the authenticated identity's profile with roles and
// linked schools.
func (s *AuthService) GetProfile(ctx context.Context, identityID uuid.UUID) (*dto.ProfileResponse, error) {
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.GetRoleNames(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	schools, err := s.identities.SchoolsFor(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		ID:       identity.ID.String(),
		FullName: identity.FullName,
		CPF:      identity.CPF,
		Email:    identity.Email,
		Phone:    identity.Phone,
		Active:   identity.Active,
		Roles:    roles,
	}
	for _, school := range schools {
		resp.Schools = append(resp.Schools, dto.FromSchool(school))
	}
	return resp, nil
}

// CheckCPF reports whether a CPF is well-formed and already registered.
// Malformed CPFs are reported as invalid rather than rejected, so signup
// forms can probe as the user types.
func (s *AuthService) CheckCPF(ctx context.Context, rawCPF string) (*dto.CheckCPFResponse, error) {
	cpf := validation.NormalizeCPF(rawCPF)
	if !validation.IsValidCPF(cpf) {
		return &dto.CheckCPFResponse{Exists: false, Valid: false}, nil
	}

	exists, err := s.identities.CPFExists(ctx, cpf)
	if err != nil {
		return nil, err
	}
	return &dto.CheckCPFResponse{Exists: exists, Valid: true}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, identity *models.Identity, roles []string) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(identity, roles)
	if err != nil {
		return nil, err
	}

	err = s.tokens.CreateToken(ctx, &models.RefreshToken{
		IdentityID: identity.ID,
		Token:      refreshToken,
		ExpiresAt:  s.jwt.GetRefreshTokenExpiry(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
