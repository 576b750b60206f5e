package dto

// UpsertMessMenuRequest creates or replaces the items for one meal slot,
// keyed on (day, mealType, weekStart).
type UpsertMessMenuRequest struct {
	Day       string   `json:"day" binding:"required"`
	MealType  string   `json:"mealType" binding:"required"`
	Items     []string `json:"items" binding:"required,min=1"`
	WeekStart string   `json:"weekStart" binding:"required"`
}

// MessMenuFilterRequest selects the menu for one week.
type MessMenuFilterRequest struct {
	WeekStart string `form:"weekStart"`
}
