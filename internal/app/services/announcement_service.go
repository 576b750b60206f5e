package services

import (
	"context"
	"fmt"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

// announcementStore is the slice of the announcement repository the service needs.
type announcementStore interface {
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) (int64, error)
	GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error)
	GetAllAnnouncements(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Announcement, int, error)
	UpdateAnnouncement(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteAnnouncement(ctx context.Context, id int64) error
}

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, req *dto.CreateAnnouncementRequest) (*models.Announcement, error)
	GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error)
	GetAllAnnouncements(ctx context.Context, filter *dto.AnnouncementFilterRequest) ([]models.Announcement, dto.PaginationInfo, error)
	UpdateAnnouncement(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	announcementRepo announcementStore
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo announcementStore) AnnouncementService {
	return &announcementServiceImpl{announcementRepo: announcementRepo}
}

func validPriority(p models.AnnouncementPriority) bool {
	switch p {
	case models.PriorityNormal, models.PriorityImportant, models.PriorityUrgent:
		return true
	}
	return false
}

// CreateAnnouncement publishes a new announcement. Priority defaults to NORMAL.
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	priority := models.AnnouncementPriority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityNormal
	}
	if !validPriority(priority) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid priority: %s", req.Priority))
	}

	announcement := &models.Announcement{
		Title:         req.Title,
		Content:       req.Content,
		Priority:      priority,
		CreatedBy:     req.CreatedBy,
		CreatedByName: req.CreatedByName,
	}

	id, err := s.announcementRepo.CreateAnnouncement(ctx, announcement)
	if err != nil {
		return nil, err
	}

	return s.announcementRepo.GetAnnouncementByID(ctx, id)
}

// GetAnnouncementByID retrieves a single announcement
func (s *announcementServiceImpl) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	return s.announcementRepo.GetAnnouncementByID(ctx, id)
}

// GetAllAnnouncements retrieves a filtered, paginated announcement list
func (s *announcementServiceImpl) GetAllAnnouncements(ctx context.Context, filter *dto.AnnouncementFilterRequest) ([]models.Announcement, dto.PaginationInfo, error) {
	_, pageSize := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	filters := map[string]interface{}{
		"priority":  filter.Priority,
		"search":    filter.Search,
		"sortBy":    filter.SortBy,
		"sortOrder": filter.SortOrder,
	}

	announcements, total, err := s.announcementRepo.GetAllAnnouncements(ctx, page, pageSize, filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error getting announcements: %w", err)
	}

	return announcements, helpers.NewPaginationInfo(int64(total), page, pageSize), nil
}

// UpdateAnnouncement applies a partial update to an announcement
func (s *announcementServiceImpl) UpdateAnnouncement(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Priority != nil {
		if !validPriority(models.AnnouncementPriority(*req.Priority)) {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid priority: %s", *req.Priority))
		}
		fields["priority"] = *req.Priority
	}

	if len(fields) > 0 {
		if err := s.announcementRepo.UpdateAnnouncement(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.announcementRepo.GetAnnouncementByID(ctx, id)
}

// DeleteAnnouncement removes an announcement
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, id int64) error {
	return s.announcementRepo.DeleteAnnouncement(ctx, id)
}
