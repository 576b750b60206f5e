package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// AnnouncementRepository handles announcement database operations
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const announcementColumns = "id, title, content, priority, created_by, created_by_name, created_at, updated_at"

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var announcement models.Announcement
	err := row.Scan(
		&announcement.ID, &announcement.Title, &announcement.Content, &announcement.Priority,
		&announcement.CreatedBy, &announcement.CreatedByName,
		&announcement.CreatedAt, &announcement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// CreateAnnouncement inserts a new announcement and returns its ID
func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) (int64, error) {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "content", "priority", "created_by", "created_by_name").
		Values(announcement.Title, announcement.Content, announcement.Priority,
			announcement.CreatedBy, announcement.CreatedByName).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create announcement query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create announcement query")
		return 0, fmt.Errorf("error inserting announcement: %w", err)
	}

	logger.Info().Int64("announcementID", id).Msg("Announcement created successfully")
	return id, nil
}

// GetAnnouncementByID retrieves an announcement by ID
func (r *AnnouncementRepository) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sql, args, err := r.sb.Select(announcementColumns).
		From("announcements").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get announcement query: %w", err)
	}

	announcement, err := scanAnnouncement(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("announcementID", id).Msg("Announcement not found by ID")
			return nil, apperrors.ErrAnnouncementNotFound
		}
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error scanning announcement row by ID")
		return nil, fmt.Errorf("error querying announcement ID=%d: %w", id, err)
	}
	return announcement, nil
}

// GetAllAnnouncements retrieves announcements with pagination and optional filtering/sorting
func (r *AnnouncementRepository) GetAllAnnouncements(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Announcement, int, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.sb.Select(announcementColumns).From("announcements")
	countSelect := r.sb.Select("COUNT(*)").From("announcements")

	whereCondition := squirrel.And{}
	if priority, ok := filters["priority"].(string); ok && priority != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"priority": priority})
	}
	if search, ok := filters["search"].(string); ok && search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
		})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count announcements query: %w", err)
	}

	var totalItems int
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count announcements query")
		return nil, 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	if totalItems == 0 {
		return []models.Announcement{}, 0, nil
	}

	sortColumn, sortOrder := resolveSort(filters, map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"priority":  "priority",
		"title":     "title",
	}, "created_at", "DESC")

	baseSelect = baseSelect.OrderBy(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Limit(uint64(pageSize)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get announcements query")
		return nil, 0, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		announcements = append(announcements, *announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, totalItems, nil
}

// UpdateAnnouncement applies a partial update to an announcement
func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.sb.Update("announcements").
		SetMap(fields).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error executing update announcement query")
		return fmt.Errorf("error updating announcement ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	logger.Info().Int64("announcementID", id).Msg("Announcement updated successfully")
	return nil
}

// DeleteAnnouncement removes an announcement
func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error executing delete announcement query")
		return fmt.Errorf("error deleting announcement ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	logger.Info().Int64("announcementID", id).Msg("Announcement deleted successfully")
	return nil
}
