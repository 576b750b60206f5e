package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "access-secret-for-tests",
		RefreshSecret:   "refresh-secret-for-tests",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hostelease.test",
	})
	authMiddleware := NewAuthMiddleware(jwtService)

	router := gin.New()
	protected := router.Group("/", authMiddleware.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		id, _ := GetUserID(c)
		role, _ := GetRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": id, "role": role})
	})
	protected.GET("/staff", authMiddleware.RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestJWTAuthGarbageToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, "/me", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router, _ := newTestRouter(t)

	expiredService := auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "access-secret-for-tests",
		RefreshSecret:   "refresh-secret-for-tests",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hostelease.test",
	})
	token, _, err := expiredService.GenerateTokenPair(1, string(models.RoleStudent))
	require.NoError(t, err)

	w := doRequest(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestJWTAuthValidToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	token, _, err := jwtService.GenerateTokenPair(42, string(models.RoleStudent))
	require.NoError(t, err)

	w := doRequest(router, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), string(models.RoleStudent))
}

func TestRequireStaff(t *testing.T) {
	router, jwtService := newTestRouter(t)

	tests := []struct {
		role models.RoleType
		want int
	}{
		{models.RoleStudent, http.StatusForbidden},
		{models.RoleWarden, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			token, _, err := jwtService.GenerateTokenPair(1, string(tt.role))
			require.NoError(t, err)

			w := doRequest(router, "/staff", token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
