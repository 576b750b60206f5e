package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/db"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// VisitorRepository handles visitor log database operations
type VisitorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVisitorRepository creates a new VisitorRepository
func NewVisitorRepository(db *pgxpool.Pool) *VisitorRepository {
	return &VisitorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var visitorSelectColumns = []string{
	"v.id", "v.visitor_name", "v.visitor_contact", "v.purpose",
	"v.student_id", "v.room_number", "v.entry_time", "v.exit_time",
	"v.expected_duration", "v.created_at", "v.updated_at",
	"COALESCE(u.name, 'Unknown Student') AS student_name",
}

func scanVisitor(row pgx.Row) (*models.Visitor, error) {
	var visitor models.Visitor
	err := row.Scan(
		&visitor.ID, &visitor.VisitorName, &visitor.VisitorContact, &visitor.Purpose,
		&visitor.StudentID, &visitor.RoomNumber, &visitor.EntryTime, &visitor.ExitTime,
		&visitor.ExpectedDuration, &visitor.CreatedAt, &visitor.UpdatedAt,
		&visitor.StudentName,
	)
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// CreateVisitor inserts a new visitor entry and returns its ID
func (r *VisitorRepository) CreateVisitor(ctx context.Context, visitor *models.Visitor) (int64, error) {
	sql, args, err := r.sb.Insert("visitors").
		Columns("visitor_name", "visitor_contact", "purpose", "student_id",
			"room_number", "entry_time", "expected_duration").
		Values(visitor.VisitorName, visitor.VisitorContact, visitor.Purpose,
			visitor.StudentID, visitor.RoomNumber, visitor.EntryTime, visitor.ExpectedDuration).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create visitor query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create visitor query")
		return 0, fmt.Errorf("error inserting visitor: %w", err)
	}

	logger.Info().Int64("visitorID", id).Msg("Visitor entry created successfully")
	return id, nil
}

// GetVisitorByID retrieves a visitor entry by ID including the student's name
func (r *VisitorRepository) GetVisitorByID(ctx context.Context, id int64) (*models.Visitor, error) {
	sql, args, err := r.sb.Select(visitorSelectColumns...).
		From("visitors v").
		LeftJoin("users u ON v.student_id = u.id").
		Where(squirrel.Eq{"v.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get visitor query: %w", err)
	}

	visitor, err := scanVisitor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("visitorID", id).Msg("Visitor not found by ID")
			return nil, apperrors.ErrVisitorNotFound
		}
		logger.Error().Err(err).Int64("visitorID", id).Msg("Error scanning visitor row by ID")
		return nil, fmt.Errorf("error querying visitor ID=%d: %w", id, err)
	}
	return visitor, nil
}

// GetAllVisitors retrieves visitor entries with pagination and optional filtering/sorting
func (r *VisitorRepository) GetAllVisitors(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Visitor, int, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.sb.Select(visitorSelectColumns...).
		From("visitors v").
		LeftJoin("users u ON v.student_id = u.id")

	countSelect := r.sb.Select("COUNT(*)").
		From("visitors v").
		LeftJoin("users u ON v.student_id = u.id")

	whereCondition := squirrel.And{}
	if studentID, ok := filters["student_id"].(int64); ok && studentID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"v.student_id": studentID})
	}
	if roomNumber, ok := filters["room_number"].(string); ok && roomNumber != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"v.room_number": roomNumber})
	}
	if hasExited, ok := filters["has_exited"].(bool); ok {
		if hasExited {
			whereCondition = append(whereCondition, squirrel.Expr("v.exit_time IS NOT NULL"))
		} else {
			whereCondition = append(whereCondition, squirrel.Expr("v.exit_time IS NULL"))
		}
	}
	if search, ok := filters["search"].(string); ok && search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"v.visitor_name": pattern},
			squirrel.ILike{"v.visitor_contact": pattern},
			squirrel.ILike{"v.purpose": pattern},
		})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count visitors query: %w", err)
	}

	var totalItems int
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count visitors query")
		return nil, 0, fmt.Errorf("failed to count visitors: %w", err)
	}

	if totalItems == 0 {
		return []models.Visitor{}, 0, nil
	}

	sortColumn, sortOrder := resolveSort(filters, map[string]string{
		"entryTime":   "v.entry_time",
		"exitTime":    "v.exit_time",
		"visitorName": "v.visitor_name",
		"roomNumber":  "v.room_number",
		"createdAt":   "v.created_at",
	}, "v.entry_time", "DESC")

	baseSelect = baseSelect.OrderBy(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Limit(uint64(pageSize)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get visitors query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get visitors query")
		return nil, 0, fmt.Errorf("failed to query visitors: %w", err)
	}
	defer rows.Close()

	visitors := []models.Visitor{}
	for rows.Next() {
		visitor, err := scanVisitor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan visitor row: %w", err)
		}
		visitors = append(visitors, *visitor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating visitor rows: %w", err)
	}

	return visitors, totalItems, nil
}

// MarkExit records a visitor's exit inside a transaction. The row is locked
// so two concurrent exits cannot both succeed; a second attempt fails with
// ErrAlreadyExited and the original exit time is preserved.
func (r *VisitorRepository) MarkExit(ctx context.Context, id int64, exitTime time.Time) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var currentExit *time.Time
		err := tx.QueryRow(ctx,
			"SELECT exit_time FROM visitors WHERE id = $1 FOR UPDATE", id,
		).Scan(&currentExit)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrVisitorNotFound
			}
			return fmt.Errorf("error locking visitor ID=%d: %w", id, err)
		}

		if currentExit != nil {
			return apperrors.ErrAlreadyExited
		}

		sql, args, err := r.sb.Update("visitors").
			Set("exit_time", exitTime).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build mark exit query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error marking visitor exit ID=%d: %w", id, err)
		}

		logger.Info().Int64("visitorID", id).Time("exitTime", exitTime).Msg("Visitor exit recorded")
		return nil
	})
}

// DeleteVisitor removes a visitor entry
func (r *VisitorRepository) DeleteVisitor(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("visitors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete visitor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("visitorID", id).Msg("Error executing delete visitor query")
		return fmt.Errorf("error deleting visitor ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrVisitorNotFound
	}

	logger.Info().Int64("visitorID", id).Msg("Visitor entry deleted successfully")
	return nil
}

// ListOrphanIDs returns visitor IDs whose student no longer exists.
func (r *VisitorRepository) ListOrphanIDs(ctx context.Context) ([]int64, error) {
	return listOrphanIDs(ctx, r.db, "visitors")
}

// DeleteOrphans removes visitor entries whose student no longer exists.
func (r *VisitorRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	return deleteOrphans(ctx, r.db, "visitors")
}
