package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is an opaque token exchanged for a new access token.
type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	IdentityID uuid.UUID  `json:"identityId"`
	Token      string     `json:"-"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Expired reports whether the token is past its expiry.
func (t *RefreshToken) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}

// Revoked reports whether the token was revoked.
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}
