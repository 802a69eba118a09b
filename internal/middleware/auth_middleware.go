package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextIdentityID = "identityID"
	ContextRoles      = "roles"
)

// JWTAuth validates the Authorization bearer token and stores the identity
// id and roles on the request context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "missing or malformed authorization header")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "token expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "invalid token")
			return
		}

		identityID, err := uuid.Parse(claims.IdentityID)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "invalid token subject")
			return
		}

		c.Set(ContextIdentityID, identityID)
		c.Set(ContextRoles, claims.Roles)
		c.Next()
	}
}

// RoleRequired allows the request through only when the authenticated
// identity holds at least one of the given roles.
func RoleRequired(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := c.Get(ContextRoles)
		if !ok {
			abortForbidden(c)
			return
		}

		held, ok := roles.([]string)
		if !ok {
			abortForbidden(c)
			return
		}

		for _, have := range held {
			for _, want := range allowed {
				if have == want {
					c.Next()
					return
				}
			}
		}
		abortForbidden(c)
	}
}

// IdentityIDFromContext returns the authenticated identity id, if any.
func IdentityIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextIdentityID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "permission denied")))
}
