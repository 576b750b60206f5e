package models

import "time"

// Visitor defines the visitor log model based on the 'visitors' table.
// A visitor is "active" while ExitTime is nil.
type Visitor struct {
	ID               int64      `json:"id" db:"id"`
	VisitorName      string     `json:"visitorName" db:"visitor_name" example:"John Doe"`
	VisitorContact   string     `json:"visitorContact" db:"visitor_contact" example:"+911234567890"`
	Purpose          string     `json:"purpose" db:"purpose" example:"Family Visit"`
	StudentID        int64      `json:"studentId" db:"student_id"`
	RoomNumber       string     `json:"roomNumber" db:"room_number"`
	EntryTime        time.Time  `json:"entryTime" db:"entry_time"`
	ExitTime         *time.Time `json:"exitTime" db:"exit_time"`                         // Nil while the visitor is still inside
	ExpectedDuration int        `json:"expectedDuration" db:"expected_duration" example:"60"` // Minutes
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
	StudentName      string     `json:"studentName,omitempty" db:"-"`
}

// HasExited reports whether the visitor has left.
func (v *Visitor) HasExited() bool {
	return v.ExitTime != nil
}
