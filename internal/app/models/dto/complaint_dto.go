package dto

// CreateComplaintRequest represents a complaint creation request.
// All fields are required.
type CreateComplaintRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	StudentID   int64  `json:"studentId" binding:"required"`
	RoomNumber  string `json:"roomNumber" binding:"required"`
}

// UpdateComplaintStatusRequest represents a staff status transition.
type UpdateComplaintStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	ResolutionNotes *string `json:"resolutionNotes"`
	ResolvedBy      *string `json:"resolvedBy"`
}

// ComplaintFilterRequest represents complaint list filter parameters.
type ComplaintFilterRequest struct {
	StudentID  int64  `form:"studentId"`
	Status     string `form:"status"`
	Category   string `form:"category"`
	RoomNumber string `form:"roomNumber"`
	Search     string `form:"search"` // Matches title and description
	SortBy     string `form:"sortBy,default=createdAt"`
	SortOrder  string `form:"sortOrder,default=desc"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
}
