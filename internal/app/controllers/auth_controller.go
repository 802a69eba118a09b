package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates with email and password and returns a token pair.
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	tokens, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// RefreshToken exchanges a refresh token for a new token pair.
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	tokens, err := ctrl.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// Logout revokes all refresh tokens of the authenticated identity.
func (ctrl *AuthController) Logout(c *gin.Context) {
	identityID, ok := middleware.IdentityIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "authentication required")))
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), identityID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "logged out"}))
}

// GetProfile returns the authenticated identity's profile.
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	identityID, ok := middleware.IdentityIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "authentication required")))
		return
	}

	profile, err := ctrl.authService.GetProfile(c.Request.Context(), identityID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// CheckCPF reports whether a CPF is well-formed and already registered.
func (ctrl *AuthController) CheckCPF(c *gin.Context) {
	var req dto.CheckCPFRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ctrl.authService.CheckCPF(c.Request.Context(), req.CPF)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
