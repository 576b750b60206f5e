package services

import (
	"context"
	"fmt"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

// leaveStore is the slice of the leave repository the service needs.
type leaveStore interface {
	CreateLeave(ctx context.Context, leave *models.Leave) (int64, error)
	GetLeaveByID(ctx context.Context, id int64) (*models.Leave, error)
	GetAllLeaves(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Leave, int, error)
	TransitionStatus(ctx context.Context, id int64, to models.LeaveStatus, approvedBy string, rejectionReason *string) error
	DeleteLeave(ctx context.Context, id int64) error
}

// LeaveService defines the interface for leave application operations
type LeaveService interface {
	CreateLeave(ctx context.Context, req *dto.CreateLeaveRequest) (*models.Leave, error)
	GetLeaveByID(ctx context.Context, id int64) (*models.Leave, error)
	GetAllLeaves(ctx context.Context, filter *dto.LeaveFilterRequest) ([]models.Leave, dto.PaginationInfo, error)
	ApproveLeave(ctx context.Context, id int64, req *dto.ApproveLeaveRequest) (*models.Leave, error)
	RejectLeave(ctx context.Context, id int64, req *dto.RejectLeaveRequest) (*models.Leave, error)
	DeleteLeave(ctx context.Context, id int64) error
}

// leaveServiceImpl implements LeaveService
type leaveServiceImpl struct {
	leaveRepo leaveStore
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(leaveRepo leaveStore) LeaveService {
	return &leaveServiceImpl{leaveRepo: leaveRepo}
}

// CreateLeave files a new leave application in PENDING. The date range must
// be well formed: the end date may equal but not precede the start date.
func (s *leaveServiceImpl) CreateLeave(ctx context.Context, req *dto.CreateLeaveRequest) (*models.Leave, error) {
	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid start date: %s", req.StartDate))
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid end date: %s", req.EndDate))
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "End date must not precede start date")
	}

	leave := &models.Leave{
		StudentID:   req.StudentID,
		RoomNumber:  req.RoomNumber,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		Destination: req.Destination,
	}

	id, err := s.leaveRepo.CreateLeave(ctx, leave)
	if err != nil {
		return nil, err
	}

	return s.leaveRepo.GetLeaveByID(ctx, id)
}

// GetLeaveByID retrieves a single leave application
func (s *leaveServiceImpl) GetLeaveByID(ctx context.Context, id int64) (*models.Leave, error) {
	return s.leaveRepo.GetLeaveByID(ctx, id)
}

// GetAllLeaves retrieves a filtered, paginated leave list
func (s *leaveServiceImpl) GetAllLeaves(ctx context.Context, filter *dto.LeaveFilterRequest) ([]models.Leave, dto.PaginationInfo, error) {
	_, pageSize := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	filters := map[string]interface{}{
		"student_id":  filter.StudentID,
		"status":      filter.Status,
		"room_number": filter.RoomNumber,
		"search":      filter.Search,
		"sortBy":      filter.SortBy,
		"sortOrder":   filter.SortOrder,
	}

	leaves, total, err := s.leaveRepo.GetAllLeaves(ctx, page, pageSize, filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error getting leaves: %w", err)
	}

	return leaves, helpers.NewPaginationInfo(int64(total), page, pageSize), nil
}

// ApproveLeave approves a pending leave application; repeating an approval
// is a no-op.
func (s *leaveServiceImpl) ApproveLeave(ctx context.Context, id int64, req *dto.ApproveLeaveRequest) (*models.Leave, error) {
	if err := s.leaveRepo.TransitionStatus(ctx, id, models.LeaveApproved, req.ApprovedBy, nil); err != nil {
		return nil, err
	}
	return s.leaveRepo.GetLeaveByID(ctx, id)
}

// RejectLeave rejects a pending leave application with a reason; repeating
// a rejection is a no-op.
func (s *leaveServiceImpl) RejectLeave(ctx context.Context, id int64, req *dto.RejectLeaveRequest) (*models.Leave, error) {
	if err := s.leaveRepo.TransitionStatus(ctx, id, models.LeaveRejected, req.ApprovedBy, &req.RejectionReason); err != nil {
		return nil, err
	}
	return s.leaveRepo.GetLeaveByID(ctx, id)
}

// DeleteLeave removes a leave application
func (s *leaveServiceImpl) DeleteLeave(ctx context.Context, id int64) error {
	return s.leaveRepo.DeleteLeave(ctx, id)
}
