package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

var (
	menuDays = map[string]bool{
		"MONDAY": true, "TUESDAY": true, "WEDNESDAY": true, "THURSDAY": true,
		"FRIDAY": true, "SATURDAY": true, "SUNDAY": true,
	}
	mealTypes = map[string]bool{
		"BREAKFAST": true, "LUNCH": true, "SNACKS": true, "DINNER": true,
	}
)

// messMenuStore is the slice of the mess menu repository the service needs.
type messMenuStore interface {
	UpsertMessMenu(ctx context.Context, menu *models.MessMenu) (*models.MessMenu, error)
	GetMessMenuByID(ctx context.Context, id int64) (*models.MessMenu, error)
	ListMessMenus(ctx context.Context, weekStart *time.Time) ([]models.MessMenu, error)
	DeleteMessMenu(ctx context.Context, id int64) error
}

// MessMenuService defines the interface for mess menu operations
type MessMenuService interface {
	UpsertMessMenu(ctx context.Context, req *dto.UpsertMessMenuRequest) (*models.MessMenu, error)
	ListMessMenus(ctx context.Context, filter *dto.MessMenuFilterRequest) ([]models.MessMenu, error)
	DeleteMessMenu(ctx context.Context, id int64) error
}

// messMenuServiceImpl implements MessMenuService
type messMenuServiceImpl struct {
	menuRepo messMenuStore
}

// NewMessMenuService creates a new MessMenuService
func NewMessMenuService(menuRepo messMenuStore) MessMenuService {
	return &messMenuServiceImpl{menuRepo: menuRepo}
}

// UpsertMessMenu creates or replaces one meal slot on the weekly menu
func (s *messMenuServiceImpl) UpsertMessMenu(ctx context.Context, req *dto.UpsertMessMenuRequest) (*models.MessMenu, error) {
	day := strings.ToUpper(req.Day)
	if !menuDays[day] {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid day: %s", req.Day))
	}

	mealType := strings.ToUpper(req.MealType)
	if !mealTypes[mealType] {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid meal type: %s", req.MealType))
	}

	weekStart, err := helpers.ParseDate(req.WeekStart)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid week start: %s", req.WeekStart))
	}

	items := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Menu items must not be empty")
	}

	return s.menuRepo.UpsertMessMenu(ctx, &models.MessMenu{
		Day:       day,
		MealType:  mealType,
		Items:     items,
		WeekStart: weekStart,
	})
}

// ListMessMenus returns the menu slots for one week. A week start is
// required; listing the whole table is never useful to clients.
func (s *messMenuServiceImpl) ListMessMenus(ctx context.Context, filter *dto.MessMenuFilterRequest) ([]models.MessMenu, error) {
	if filter == nil || filter.WeekStart == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Week start is required")
	}

	parsed, err := helpers.ParseDate(filter.WeekStart)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid week start: %s", filter.WeekStart))
	}

	weekStart := &parsed
	return s.menuRepo.ListMessMenus(ctx, weekStart)
}

// DeleteMessMenu removes a menu slot
func (s *messMenuServiceImpl) DeleteMessMenu(ctx context.Context, id int64) error {
	return s.menuRepo.DeleteMessMenu(ctx, id)
}
