package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Conflicting
// writes (duplicate keys, illegal transitions, settled records) map to 409;
// unrecognized errors are logged and answered with a generic 500 so internal
// detail never leaks to clients.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &custom) {
		message = custom.Error()
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrRoomNotFound,
		apperrors.ErrComplaintNotFound,
		apperrors.ErrVisitorNotFound,
		apperrors.ErrLeaveNotFound,
		apperrors.ErrAnnouncementNotFound,
		apperrors.ErrMenuItemNotFound,
		apperrors.ErrFeePaymentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))

	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Permission denied"))

	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(message))

	case apperrors.Is(err, apperrors.ErrTokenExpired,
		apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(message))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrRoomNumberExists,
		apperrors.ErrRoomFull,
		apperrors.ErrRoomUnavailable,
		apperrors.ErrOccupancyExceeded,
		apperrors.ErrInvalidTransition,
		apperrors.ErrAlreadyExited,
		apperrors.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(message))

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidStatus,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidEmail,
		apperrors.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))

	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error"))
	}
}

// HandleValidationError answers a request binding failure with 400. Field
// validation failures are reported per field instead of the raw struct error.
func HandleValidationError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request: "+strings.Join(fields, ", ")))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request: "+err.Error()))
}
