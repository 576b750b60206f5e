package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

func serveError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		HandleAPIError(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return w
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"room not found", apperrors.ErrRoomNotFound, http.StatusNotFound},
		{"complaint not found", apperrors.ErrComplaintNotFound, http.StatusNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"room full", apperrors.ErrRoomFull, http.StatusConflict},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict},
		{"already exited", apperrors.ErrAlreadyExited, http.StatusConflict},
		{"already paid", apperrors.ErrAlreadyPaid, http.StatusConflict},
		{"occupancy exceeded", apperrors.ErrOccupancyExceeded, http.StatusConflict},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"invalid status", apperrors.ErrInvalidStatus, http.StatusBadRequest},
		{"unknown error", errors.New("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestHandleAPIErrorWrappedErrorsKeepTheirStatus(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrInvalidTransition, "complaint RESOLVED -> PENDING")
	w := serveError(wrapped)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "RESOLVED")
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	w := serveError(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server error")
	assert.NotContains(t, w.Body.String(), "5432")
}
