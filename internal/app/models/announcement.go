package models

import "time"

// Announcement defines the announcement model based on the 'announcements' table
type Announcement struct {
	ID            int64                `json:"id" db:"id"`
	Title         string               `json:"title" db:"title"`
	Content       string               `json:"content" db:"content"`
	Priority      AnnouncementPriority `json:"priority" db:"priority" example:"NORMAL"`
	CreatedBy     int64                `json:"createdBy" db:"created_by"`
	CreatedByName string               `json:"createdByName" db:"created_by_name"`
	CreatedAt     time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time            `json:"updatedAt" db:"updated_at"`
}
