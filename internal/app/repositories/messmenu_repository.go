package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// MessMenuRepository handles mess menu database operations
type MessMenuRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessMenuRepository creates a new MessMenuRepository
func NewMessMenuRepository(db *pgxpool.Pool) *MessMenuRepository {
	return &MessMenuRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const messMenuColumns = "id, day, meal_type, items, week_start, created_at, updated_at"

func scanMessMenu(row pgx.Row) (*models.MessMenu, error) {
	var menu models.MessMenu
	err := row.Scan(
		&menu.ID, &menu.Day, &menu.MealType, &menu.Items,
		&menu.WeekStart, &menu.CreatedAt, &menu.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// UpsertMessMenu creates or replaces the items for one meal slot. The slot
// is keyed on (day, meal_type, week_start), so re-submitting a slot replaces
// its items instead of duplicating the row.
func (r *MessMenuRepository) UpsertMessMenu(ctx context.Context, menu *models.MessMenu) (*models.MessMenu, error) {
	sql, args, err := r.sb.Insert("mess_menus").
		Columns("day", "meal_type", "items", "week_start").
		Values(menu.Day, menu.MealType, menu.Items, menu.WeekStart).
		Suffix("ON CONFLICT (day, meal_type, week_start) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()").
		Suffix("RETURNING " + messMenuColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert mess menu query: %w", err)
	}

	saved, err := scanMessMenu(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Str("day", menu.Day).Str("mealType", menu.MealType).
			Msg("Error executing upsert mess menu query")
		return nil, fmt.Errorf("error upserting mess menu: %w", err)
	}

	logger.Info().Int64("menuID", saved.ID).Str("day", saved.Day).
		Str("mealType", saved.MealType).Msg("Mess menu slot saved")
	return saved, nil
}

// GetMessMenuByID retrieves a menu slot by ID
func (r *MessMenuRepository) GetMessMenuByID(ctx context.Context, id int64) (*models.MessMenu, error) {
	sql, args, err := r.sb.Select(messMenuColumns).
		From("mess_menus").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mess menu query: %w", err)
	}

	menu, err := scanMessMenu(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMenuItemNotFound
		}
		logger.Error().Err(err).Int64("menuID", id).Msg("Error scanning mess menu row by ID")
		return nil, fmt.Errorf("error querying mess menu ID=%d: %w", id, err)
	}
	return menu, nil
}

// ListMessMenus retrieves menu slots, optionally scoped to one week,
// ordered for stable weekly rendering.
func (r *MessMenuRepository) ListMessMenus(ctx context.Context, weekStart *time.Time) ([]models.MessMenu, error) {
	selectBuilder := r.sb.Select(messMenuColumns).
		From("mess_menus").
		OrderBy(
			"week_start DESC",
			"array_position(ARRAY['MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY'], day)",
			"array_position(ARRAY['BREAKFAST','LUNCH','SNACKS','DINNER'], meal_type)",
		)

	if weekStart != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"week_start": *weekStart})
	}

	sql, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list mess menus query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list mess menus query")
		return nil, fmt.Errorf("failed to query mess menus: %w", err)
	}
	defer rows.Close()

	menus := []models.MessMenu{}
	for rows.Next() {
		menu, err := scanMessMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mess menu row: %w", err)
		}
		menus = append(menus, *menu)
	}
	return menus, rows.Err()
}

// DeleteMessMenu removes a menu slot
func (r *MessMenuRepository) DeleteMessMenu(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("mess_menus").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete mess menu query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("menuID", id).Msg("Error executing delete mess menu query")
		return fmt.Errorf("error deleting mess menu ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMenuItemNotFound
	}

	logger.Info().Int64("menuID", id).Msg("Mess menu slot deleted successfully")
	return nil
}
