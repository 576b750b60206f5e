package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

// stubAuthService returns canned responses so the tests exercise the
// controller's binding and response shaping only.
type stubAuthService struct {
	signupResp *dto.AuthResponse
	signupErr  error
	loginResp  *dto.AuthResponse
	loginErr   error
}

func (s *stubAuthService) Signup(_ context.Context, _ *dto.SignupRequest) (*dto.AuthResponse, error) {
	return s.signupResp, s.signupErr
}

func (s *stubAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Refresh(_ context.Context, _ string) (*dto.AuthResponse, error) {
	return nil, apperrors.ErrTokenInvalid
}

func (s *stubAuthService) GetMe(_ context.Context, _ int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubAuthService) ListUsers(_ context.Context, _ *dto.UserFilterRequest) ([]models.User, error) {
	return nil, nil
}

func newAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAuthController(svc)

	router := gin.New()
	router.POST("/api/auth/signup", ctrl.Signup)
	router.POST("/api/auth/login", ctrl.Login)
	router.POST("/api/auth/refresh", ctrl.Refresh)
	return router
}

func TestAuthController_Signup(t *testing.T) {
	svc := &stubAuthService{
		signupResp: &dto.AuthResponse{
			Token:        "access-token",
			RefreshToken: "refresh-token",
			User:         &models.User{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleStudent},
		},
	}
	router := newAuthRouter(svc)

	rec := postJSON(router, http.MethodPost, "/api/auth/signup", dto.SignupRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "longenough1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "access-token", body.Data.Token)
	assert.Equal(t, "refresh-token", body.Data.RefreshToken)
	require.NotNil(t, body.Data.User)
	assert.Equal(t, models.RoleStudent, body.Data.User.Role)
	assert.Empty(t, body.Data.User.Password, "password hash must not be serialized")
}

func TestAuthController_SignupValidation(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	tests := []struct {
		name string
		body dto.SignupRequest
	}{
		{"missing email", dto.SignupRequest{Name: "A", Password: "longenough1"}},
		{"malformed email", dto.SignupRequest{Name: "A", Email: "nope", Password: "longenough1"}},
		{"short password", dto.SignupRequest{Name: "A", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(router, http.MethodPost, "/api/auth/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body struct {
				Success bool `json:"success"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
		})
	}
}

func TestAuthController_SignupDuplicateEmail(t *testing.T) {
	router := newAuthRouter(&stubAuthService{signupErr: apperrors.ErrEmailAlreadyExists})

	rec := postJSON(router, http.MethodPost, "/api/auth/signup", dto.SignupRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "longenough1",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthController_LoginFailure(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		loginErr: apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password"),
	})

	rec := postJSON(router, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid email or password", body.Message)
}

func TestAuthController_RefreshInvalidToken(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	rec := postJSON(router, http.MethodPost, "/api/auth/refresh", dto.RefreshRequest{RefreshToken: "stale"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
