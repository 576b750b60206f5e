package dto

// PaginationInfo describes the page window of a list response.
type PaginationInfo struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	Total      int64 `json:"total" example:"42"`
	TotalPages int   `json:"totalPages" example:"5"`
}

// APIResponse is the standard response envelope for all endpoints.
type APIResponse struct {
	Success    bool            `json:"success" example:"true"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// NewDataResponse creates a success envelope around data.
func NewDataResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewListResponse creates a success envelope around a page of data.
func NewListResponse(data interface{}, pagination PaginationInfo) APIResponse {
	return APIResponse{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
	}
}

// NewMessageResponse creates a success envelope carrying only a message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}

// ErrorResponse is the error envelope: an HTTP status plus a free-text
// message, no structured error codes.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Server error"`
}

// NewErrorResponse creates a standard error response.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: message,
	}
}
