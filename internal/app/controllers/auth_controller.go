package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/middleware"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Creates a user account and returns a token pair. Role defaults to STUDENT.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "User registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(resp))
}

// Login handles user authentication
// @Summary Log in
// @Description Authenticates by email and password and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Authenticated"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(resp))
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Tokens refreshed"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(resp))
}

// GetMe returns the authenticated user's profile
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Current user"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	user, err := c.authService.GetMe(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(user))
}

// ListUsers returns all users, optionally filtered by role
// @Summary List users
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (STUDENT, WARDEN, ADMIN)"
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Users"
// @Failure 403 {object} dto.ErrorResponse "Staff only"
// @Router /auth/users [get]
func (c *AuthController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	users, err := c.authService.ListUsers(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(users))
}
