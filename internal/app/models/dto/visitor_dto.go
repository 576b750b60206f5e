package dto

// CreateVisitorRequest represents a visitor check-in. Entry time defaults to
// the creation time.
type CreateVisitorRequest struct {
	VisitorName      string `json:"visitorName" binding:"required"`
	VisitorContact   string `json:"visitorContact" binding:"required"`
	Purpose          string `json:"purpose" binding:"required"`
	StudentID        int64  `json:"studentId" binding:"required"`
	RoomNumber       string `json:"roomNumber" binding:"required"`
	ExpectedDuration int    `json:"expectedDuration" binding:"required,min=1"` // Minutes
}

// VisitorFilterRequest represents visitor list filter parameters. HasExited
// maps to exit_time IS NOT NULL / IS NULL.
type VisitorFilterRequest struct {
	StudentID  int64   `form:"studentId"`
	RoomNumber string  `form:"roomNumber"`
	HasExited  *bool   `form:"hasExited"`
	Search     string  `form:"search"` // Matches visitor name, contact and purpose
	SortBy     string  `form:"sortBy,default=entryTime"`
	SortOrder  string  `form:"sortOrder,default=desc"`
	Page       int     `form:"page,default=1"`
	Limit      int     `form:"limit,default=10"`
}
