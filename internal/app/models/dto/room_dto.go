package dto

// CreateRoomRequest represents a room creation request.
type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required"`
	Floor      int    `json:"floor" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1"`
	Status     string `json:"status"` // Defaults to AVAILABLE
}

// UpdateRoomRequest represents a partial room update. Nil fields are left
// unchanged.
type UpdateRoomRequest struct {
	RoomNumber       *string `json:"roomNumber"`
	Floor            *int    `json:"floor"`
	Capacity         *int    `json:"capacity"`
	Status           *string `json:"status"`
	CurrentOccupancy *int    `json:"currentOccupancy"`
}

// AssignRoomRequest assigns a student to a room.
type AssignRoomRequest struct {
	RoomID    int64 `json:"roomId" binding:"required"`
	StudentID int64 `json:"studentId" binding:"required"`
}

// VacateRoomRequest removes a student from their current room.
type VacateRoomRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
}

// RoomFilterRequest represents room list filter parameters.
type RoomFilterRequest struct {
	Status      string `form:"status"`
	Floor       int    `form:"floor"`
	MinCapacity int    `form:"minCapacity"`
	MaxCapacity int    `form:"maxCapacity"`
	Search      string `form:"search"` // Matches room number
	SortBy      string `form:"sortBy,default=roomNumber"`
	SortOrder   string `form:"sortOrder,default=asc"`
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=10"`
}
