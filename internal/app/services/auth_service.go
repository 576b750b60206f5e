package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/auth"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// invalidCredentialsMessage is returned for both unknown emails and wrong
// passwords so login failures do not reveal which accounts exist.
const invalidCredentialsMessage = "Invalid email or password"

// userStore is the slice of the user repository the auth service needs.
type userStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context, role string) ([]models.User, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	GetMe(ctx context.Context, userID int64) (*models.User, error)
	ListUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   userStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Signup registers a new user. The role defaults to STUDENT; staff roles
// must be one of the defined values.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	role := models.RoleType(req.Role)
	if req.Role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid role: %s", req.Role))
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created user: %w", err)
	}

	return s.issueTokens(created)
}

// Login authenticates a user by email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("email", req.Email).Msg("Login failed: wrong password")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, invalidCredentialsMessage)
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	// Re-read the user so revoked accounts and role changes take effect
	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return s.issueTokens(user)
}

// GetMe returns the authenticated user's profile
func (s *authServiceImpl) GetMe(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// ListUsers returns all users, optionally filtered by role
func (s *authServiceImpl) ListUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]models.User, error) {
	role := ""
	if filter != nil && filter.Role != "" {
		if !models.RoleType(filter.Role).Valid() {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid role: %s", filter.Role))
		}
		role = filter.Role
	}
	return s.userRepo.ListUsers(ctx, role)
}

func (s *authServiceImpl) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
