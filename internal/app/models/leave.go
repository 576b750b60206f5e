package models

import "time"

// Leave defines the leave application model based on the 'leaves' table
type Leave struct {
	ID              int64       `json:"id" db:"id"`
	StudentID       int64       `json:"studentId" db:"student_id"`
	RoomNumber      string      `json:"roomNumber" db:"room_number"`
	StartDate       time.Time   `json:"startDate" db:"start_date"`
	EndDate         time.Time   `json:"endDate" db:"end_date"` // Must not precede StartDate
	Reason          string      `json:"reason" db:"reason" example:"Family Emergency"`
	Destination     string      `json:"destination" db:"destination" example:"Home"`
	Status          LeaveStatus `json:"status" db:"status" example:"PENDING"`
	ApprovedBy      *string     `json:"approvedBy" db:"approved_by"`           // Staff name, set on terminal transition
	RejectionReason *string     `json:"rejectionReason" db:"rejection_reason"` // Set on rejection only
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
	StudentName     string      `json:"studentName,omitempty" db:"-"`
}
