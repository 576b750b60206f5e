package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleWarden  RoleType = "WARDEN"
	RoleAdmin   RoleType = "ADMIN"
)

// IsStaff reports whether the role is allowed to perform approval and
// resolution actions (warden or admin).
func (r RoleType) IsStaff() bool {
	return r == RoleWarden || r == RoleAdmin
}

// Valid reports whether the role is one of the defined values.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleWarden, RoleAdmin:
		return true
	}
	return false
}

// ComplaintStatus defines a complaint's workflow state
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "PENDING"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintRejected   ComplaintStatus = "REJECTED"
)

// LeaveStatus defines a leave application's workflow state
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// RoomStatus defines a room's availability state
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomReserved    RoomStatus = "RESERVED"
)

// FeeStatus defines a fee payment's workflow state
type FeeStatus string

const (
	FeePending       FeeStatus = "PENDING"
	FeePaid          FeeStatus = "PAID"
	FeeOverdue       FeeStatus = "OVERDUE"
	FeePartiallyPaid FeeStatus = "PARTIALLY_PAID"
	FeeWaived        FeeStatus = "WAIVED"
)

// AnnouncementPriority defines an announcement's priority level
type AnnouncementPriority string

const (
	PriorityNormal    AnnouncementPriority = "NORMAL"
	PriorityImportant AnnouncementPriority = "IMPORTANT"
	PriorityUrgent    AnnouncementPriority = "URGENT"
)
