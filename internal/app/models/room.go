package models

import "time"

// Room defines the room model based on the 'rooms' table.
// Status is stored, but every occupancy or capacity change recomputes it so
// it cannot drift from the occupancy counters; MAINTENANCE and RESERVED are
// manual staff overrides that survive recomputation.
type Room struct {
	ID               int64      `json:"id" db:"id"`
	RoomNumber       string     `json:"roomNumber" db:"room_number" example:"R101"` // Unique room number
	Floor            int        `json:"floor" db:"floor" example:"1"`
	Capacity         int        `json:"capacity" db:"capacity" example:"4"`
	CurrentOccupancy int        `json:"currentOccupancy" db:"current_occupancy" example:"2"`
	Status           RoomStatus `json:"status" db:"status" example:"AVAILABLE"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// DeriveRoomStatus computes the status implied by occupancy. Manual overrides
// (MAINTENANCE, RESERVED) are preserved as-is.
func DeriveRoomStatus(occupancy, capacity int, current RoomStatus) RoomStatus {
	if current == RoomMaintenance || current == RoomReserved {
		return current
	}
	if capacity > 0 && occupancy >= capacity {
		return RoomOccupied
	}
	return RoomAvailable
}
