package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Lifecycle errors
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("unknown status value")
	ErrAlreadyExited     = errors.New("visitor has already exited")
	ErrAlreadyPaid       = errors.New("fee payment is already paid")
)

// Room errors
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomNumberExists  = errors.New("room with this number already exists")
	ErrRoomFull          = errors.New("room has no spare capacity")
	ErrRoomUnavailable   = errors.New("room is not available for assignment")
	ErrOccupancyExceeded = errors.New("current occupancy cannot exceed capacity")
)

// Entity not-found errors
var (
	ErrComplaintNotFound    = errors.New("complaint not found")
	ErrVisitorNotFound      = errors.New("visitor not found")
	ErrLeaveNotFound        = errors.New("leave application not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrFeePaymentNotFound   = errors.New("fee payment not found")
)

// Is returns whether err matches target or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
