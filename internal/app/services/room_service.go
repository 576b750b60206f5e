package services

import (
	"context"
	"fmt"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

// roomStore is the slice of the room repository the service needs.
type roomStore interface {
	CreateRoom(ctx context.Context, room *models.Room) (int64, error)
	GetRoomByID(ctx context.Context, id int64) (*models.Room, error)
	GetAllRooms(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Room, int, error)
	UpdateRoom(ctx context.Context, id int64, mutate func(room *models.Room) error) (*models.Room, error)
	AssignStudent(ctx context.Context, roomID, studentID int64) (*models.Room, error)
	VacateStudent(ctx context.Context, studentID int64) (*models.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

// RoomService defines the interface for room operations
type RoomService interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error)
	GetRoomByID(ctx context.Context, id int64) (*models.Room, error)
	GetAllRooms(ctx context.Context, filter *dto.RoomFilterRequest) ([]models.Room, dto.PaginationInfo, error)
	UpdateRoom(ctx context.Context, id int64, req *dto.UpdateRoomRequest) (*models.Room, error)
	AssignRoom(ctx context.Context, req *dto.AssignRoomRequest) (*models.Room, error)
	VacateRoom(ctx context.Context, req *dto.VacateRoomRequest) (*models.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

// roomServiceImpl implements RoomService
type roomServiceImpl struct {
	roomRepo roomStore
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo roomStore) RoomService {
	return &roomServiceImpl{roomRepo: roomRepo}
}

func validRoomStatus(s models.RoomStatus) bool {
	switch s {
	case models.RoomAvailable, models.RoomOccupied, models.RoomMaintenance, models.RoomReserved:
		return true
	}
	return false
}

// CreateRoom registers a new room. Status defaults to AVAILABLE and is
// recomputed from occupancy either way.
func (s *roomServiceImpl) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error) {
	status := models.RoomStatus(req.Status)
	if req.Status == "" {
		status = models.RoomAvailable
	}
	if !validRoomStatus(status) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, fmt.Sprintf("Invalid room status: %s", req.Status))
	}

	room := &models.Room{
		RoomNumber:       req.RoomNumber,
		Floor:            req.Floor,
		Capacity:         req.Capacity,
		CurrentOccupancy: 0,
		Status:           models.DeriveRoomStatus(0, req.Capacity, status),
	}

	id, err := s.roomRepo.CreateRoom(ctx, room)
	if err != nil {
		return nil, err
	}

	return s.roomRepo.GetRoomByID(ctx, id)
}

// GetRoomByID retrieves a single room
func (s *roomServiceImpl) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	return s.roomRepo.GetRoomByID(ctx, id)
}

// GetAllRooms retrieves a filtered, paginated room list
func (s *roomServiceImpl) GetAllRooms(ctx context.Context, filter *dto.RoomFilterRequest) ([]models.Room, dto.PaginationInfo, error) {
	_, pageSize := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	filters := map[string]interface{}{
		"status":       filter.Status,
		"floor":        filter.Floor,
		"min_capacity": filter.MinCapacity,
		"max_capacity": filter.MaxCapacity,
		"search":       filter.Search,
		"sortBy":       filter.SortBy,
		"sortOrder":    filter.SortOrder,
	}

	rooms, total, err := s.roomRepo.GetAllRooms(ctx, page, pageSize, filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error getting rooms: %w", err)
	}

	return rooms, helpers.NewPaginationInfo(int64(total), page, pageSize), nil
}

// UpdateRoom applies a partial room update. Occupancy may never exceed
// capacity, and the stored status is recomputed after every change.
func (s *roomServiceImpl) UpdateRoom(ctx context.Context, id int64, req *dto.UpdateRoomRequest) (*models.Room, error) {
	if req.Status != nil && !validRoomStatus(models.RoomStatus(*req.Status)) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, fmt.Sprintf("Invalid room status: %s", *req.Status))
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Capacity must be at least 1")
	}

	return s.roomRepo.UpdateRoom(ctx, id, func(room *models.Room) error {
		if req.RoomNumber != nil {
			room.RoomNumber = *req.RoomNumber
		}
		if req.Floor != nil {
			room.Floor = *req.Floor
		}
		if req.Capacity != nil {
			room.Capacity = *req.Capacity
		}
		if req.CurrentOccupancy != nil {
			room.CurrentOccupancy = *req.CurrentOccupancy
		}
		if req.Status != nil {
			room.Status = models.RoomStatus(*req.Status)
		}
		return nil
	})
}

// AssignRoom places a student in a room, releasing their previous room in
// the same transaction.
func (s *roomServiceImpl) AssignRoom(ctx context.Context, req *dto.AssignRoomRequest) (*models.Room, error) {
	return s.roomRepo.AssignStudent(ctx, req.RoomID, req.StudentID)
}

// VacateRoom removes a student from their current room, releasing the slot.
func (s *roomServiceImpl) VacateRoom(ctx context.Context, req *dto.VacateRoomRequest) (*models.Room, error) {
	return s.roomRepo.VacateStudent(ctx, req.StudentID)
}

// DeleteRoom removes a room
func (s *roomServiceImpl) DeleteRoom(ctx context.Context, id int64) error {
	return s.roomRepo.DeleteRoom(ctx, id)
}
