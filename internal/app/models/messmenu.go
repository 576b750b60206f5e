package models

import "time"

// MessMenu defines a single meal slot on the weekly mess menu, unique on
// (day, mealType, weekStart).
type MessMenu struct {
	ID        int64     `json:"id" db:"id"`
	Day       string    `json:"day" db:"day" example:"MONDAY"`
	MealType  string    `json:"mealType" db:"meal_type" example:"BREAKFAST"`
	Items     []string  `json:"items" db:"items"` // Ordered list of dishes, stored as JSONB
	WeekStart time.Time `json:"weekStart" db:"week_start"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
