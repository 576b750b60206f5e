package models

import "time"

// Complaint defines the complaint model based on the 'complaints' table
type Complaint struct {
	ID              int64           `json:"id" db:"id"`
	Title           string          `json:"title" db:"title" example:"Broken AC"`
	Description     string          `json:"description" db:"description"`
	Category        string          `json:"category" db:"category" example:"MAINTENANCE"` // MAINTENANCE, CLEANLINESS, FOOD, SECURITY, OTHER
	Status          ComplaintStatus `json:"status" db:"status" example:"PENDING"`
	StudentID       int64           `json:"studentId" db:"student_id"`
	RoomNumber      string          `json:"roomNumber" db:"room_number"`
	ResolutionNotes *string         `json:"resolutionNotes" db:"resolution_notes"` // Set when resolved
	ResolvedBy      *string         `json:"resolvedBy" db:"resolved_by"`           // Staff name, set when resolved
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
	StudentName     string          `json:"studentName,omitempty" db:"-"` // Joined from users on read
	StudentEmail    string          `json:"studentEmail,omitempty" db:"-"`
}
