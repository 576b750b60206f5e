package dto

import "github.com/hostelease/hostelease/internal/app/models"

// SignupRequest represents a signup request
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"` // Defaults to STUDENT when empty
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse carries the token pair and the authenticated user.
type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

// UserFilterRequest represents the staff user-listing filter
type UserFilterRequest struct {
	Role string `form:"role"`
}
