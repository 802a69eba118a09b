package dto

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the token refresh payload.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents the token pair returned on login/refresh.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
}

// ProfileResponse represents the authenticated identity's profile.
type ProfileResponse struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	CPF      *string  `json:"cpf,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Active   bool     `json:"active"`
	Roles    []string `json:"roles"`
	Schools  []SchoolResponse `json:"schools,omitempty"`
}

// CheckCPFRequest represents the CPF availability query.
type CheckCPFRequest struct {
	CPF string `form:"cpf" binding:"required"`
}

// CheckCPFResponse reports whether a CPF is well-formed and already taken.
type CheckCPFResponse struct {
	Exists bool `json:"exists"`
	Valid  bool `json:"valid"`
}
