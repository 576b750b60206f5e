package dto

// CreateLeaveRequest represents a leave application. Dates accept RFC 3339
// or plain YYYY-MM-DD.
type CreateLeaveRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	RoomNumber  string `json:"roomNumber" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// ApproveLeaveRequest records the approving staff member.
type ApproveLeaveRequest struct {
	ApprovedBy string `json:"approvedBy" binding:"required"`
}

// RejectLeaveRequest records the rejecting staff member and the reason.
type RejectLeaveRequest struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
	ApprovedBy      string `json:"approvedBy" binding:"required"`
}

// LeaveFilterRequest represents leave list filter parameters.
type LeaveFilterRequest struct {
	StudentID  int64  `form:"studentId"`
	Status     string `form:"status"`
	RoomNumber string `form:"roomNumber"`
	Search     string `form:"search"` // Matches reason and destination
	SortBy     string `form:"sortBy,default=createdAt"`
	SortOrder  string `form:"sortOrder,default=desc"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
}
