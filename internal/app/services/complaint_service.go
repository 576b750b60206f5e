package services

import (
	"context"
	"fmt"

	"github.com/hostelease/hostelease/internal/app/lifecycle"
	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

// complaintStore is the slice of the complaint repository the service needs.
type complaintStore interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) (int64, error)
	GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error)
	GetAllComplaints(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Complaint, int, error)
	TransitionStatus(ctx context.Context, id int64, to models.ComplaintStatus, resolutionNotes, resolvedBy *string) error
	DeleteComplaint(ctx context.Context, id int64) error
}

// ComplaintService defines the interface for complaint operations
type ComplaintService interface {
	CreateComplaint(ctx context.Context, req *dto.CreateComplaintRequest) (*models.Complaint, error)
	GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error)
	GetAllComplaints(ctx context.Context, filter *dto.ComplaintFilterRequest) ([]models.Complaint, dto.PaginationInfo, error)
	UpdateStatus(ctx context.Context, id int64, req *dto.UpdateComplaintStatusRequest) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, id int64) error
}

// complaintServiceImpl implements ComplaintService
type complaintServiceImpl struct {
	complaintRepo complaintStore
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(complaintRepo complaintStore) ComplaintService {
	return &complaintServiceImpl{complaintRepo: complaintRepo}
}

// CreateComplaint files a new complaint in PENDING
func (s *complaintServiceImpl) CreateComplaint(ctx context.Context, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	complaint := &models.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		StudentID:   req.StudentID,
		RoomNumber:  req.RoomNumber,
	}

	id, err := s.complaintRepo.CreateComplaint(ctx, complaint)
	if err != nil {
		return nil, err
	}

	return s.complaintRepo.GetComplaintByID(ctx, id)
}

// GetComplaintByID retrieves a single complaint
func (s *complaintServiceImpl) GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error) {
	return s.complaintRepo.GetComplaintByID(ctx, id)
}

// GetAllComplaints retrieves a filtered, paginated complaint list
func (s *complaintServiceImpl) GetAllComplaints(ctx context.Context, filter *dto.ComplaintFilterRequest) ([]models.Complaint, dto.PaginationInfo, error) {
	_, pageSize := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	filters := map[string]interface{}{
		"student_id":  filter.StudentID,
		"status":      filter.Status,
		"category":    filter.Category,
		"room_number": filter.RoomNumber,
		"search":      filter.Search,
		"sortBy":      filter.SortBy,
		"sortOrder":   filter.SortOrder,
	}

	complaints, total, err := s.complaintRepo.GetAllComplaints(ctx, page, pageSize, filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error getting complaints: %w", err)
	}

	return complaints, helpers.NewPaginationInfo(int64(total), page, pageSize), nil
}

// UpdateStatus transitions a complaint through its workflow
func (s *complaintServiceImpl) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateComplaintStatusRequest) (*models.Complaint, error) {
	to := models.ComplaintStatus(req.Status)
	if !lifecycle.ValidComplaintStatus(to) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, fmt.Sprintf("Invalid complaint status: %s", req.Status))
	}

	if err := s.complaintRepo.TransitionStatus(ctx, id, to, req.ResolutionNotes, req.ResolvedBy); err != nil {
		return nil, err
	}

	return s.complaintRepo.GetComplaintByID(ctx, id)
}

// DeleteComplaint removes a complaint
func (s *complaintServiceImpl) DeleteComplaint(ctx context.Context, id int64) error {
	return s.complaintRepo.DeleteComplaint(ctx, id)
}
