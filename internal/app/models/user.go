package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Name       string    `json:"name" db:"name" example:"Student 1"`                       // Display name
	Email      string    `json:"email" db:"email" example:"student1@hostelease.com"`       // User's email address (unique)
	Password   string    `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	Role       RoleType  `json:"role" db:"role" example:"STUDENT"`                         // STUDENT, WARDEN or ADMIN
	RoomNumber *string   `json:"roomNumber" db:"room_number" example:"R101"`               // Assigned room number (nullable, staff have none)
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}
