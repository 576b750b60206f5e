package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

// visitorStore is the slice of the visitor repository the service needs.
type visitorStore interface {
	CreateVisitor(ctx context.Context, visitor *models.Visitor) (int64, error)
	GetVisitorByID(ctx context.Context, id int64) (*models.Visitor, error)
	GetAllVisitors(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Visitor, int, error)
	MarkExit(ctx context.Context, id int64, exitTime time.Time) error
	DeleteVisitor(ctx context.Context, id int64) error
}

// VisitorService defines the interface for visitor log operations
type VisitorService interface {
	CreateVisitor(ctx context.Context, req *dto.CreateVisitorRequest) (*models.Visitor, error)
	GetVisitorByID(ctx context.Context, id int64) (*models.Visitor, error)
	GetAllVisitors(ctx context.Context, filter *dto.VisitorFilterRequest) ([]models.Visitor, dto.PaginationInfo, error)
	MarkExit(ctx context.Context, id int64) (*models.Visitor, error)
	DeleteVisitor(ctx context.Context, id int64) error
}

// visitorServiceImpl implements VisitorService
type visitorServiceImpl struct {
	visitorRepo visitorStore
	now         func() time.Time
}

// NewVisitorService creates a new VisitorService
func NewVisitorService(visitorRepo visitorStore) VisitorService {
	return &visitorServiceImpl{
		visitorRepo: visitorRepo,
		now:         time.Now,
	}
}

// CreateVisitor checks a visitor in. Entry time is the creation time.
func (s *visitorServiceImpl) CreateVisitor(ctx context.Context, req *dto.CreateVisitorRequest) (*models.Visitor, error) {
	visitor := &models.Visitor{
		VisitorName:      req.VisitorName,
		VisitorContact:   req.VisitorContact,
		Purpose:          req.Purpose,
		StudentID:        req.StudentID,
		RoomNumber:       req.RoomNumber,
		EntryTime:        s.now(),
		ExpectedDuration: req.ExpectedDuration,
	}

	id, err := s.visitorRepo.CreateVisitor(ctx, visitor)
	if err != nil {
		return nil, err
	}

	return s.visitorRepo.GetVisitorByID(ctx, id)
}

// GetVisitorByID retrieves a single visitor entry
func (s *visitorServiceImpl) GetVisitorByID(ctx context.Context, id int64) (*models.Visitor, error) {
	return s.visitorRepo.GetVisitorByID(ctx, id)
}

// GetAllVisitors retrieves a filtered, paginated visitor list
func (s *visitorServiceImpl) GetAllVisitors(ctx context.Context, filter *dto.VisitorFilterRequest) ([]models.Visitor, dto.PaginationInfo, error) {
	_, pageSize := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	filters := map[string]interface{}{
		"student_id":  filter.StudentID,
		"room_number": filter.RoomNumber,
		"search":      filter.Search,
		"sortBy":      filter.SortBy,
		"sortOrder":   filter.SortOrder,
	}
	if filter.HasExited != nil {
		filters["has_exited"] = *filter.HasExited
	}

	visitors, total, err := s.visitorRepo.GetAllVisitors(ctx, page, pageSize, filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error getting visitors: %w", err)
	}

	return visitors, helpers.NewPaginationInfo(int64(total), page, pageSize), nil
}

// MarkExit records a visitor's departure. A second exit attempt fails and
// keeps the first exit time.
func (s *visitorServiceImpl) MarkExit(ctx context.Context, id int64) (*models.Visitor, error) {
	if err := s.visitorRepo.MarkExit(ctx, id, s.now()); err != nil {
		return nil, err
	}
	return s.visitorRepo.GetVisitorByID(ctx, id)
}

// DeleteVisitor removes a visitor entry
func (s *visitorServiceImpl) DeleteVisitor(ctx context.Context, id int64) error {
	return s.visitorRepo.DeleteVisitor(ctx, id)
}
