package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelease/hostelease/internal/app/lifecycle"
	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/db"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// LeaveRepository handles leave application database operations
type LeaveRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var leaveSelectColumns = []string{
	"l.id", "l.student_id", "l.room_number", "l.start_date", "l.end_date",
	"l.reason", "l.destination", "l.status", "l.approved_by", "l.rejection_reason",
	"l.created_at", "l.updated_at",
	"COALESCE(u.name, 'Unknown Student') AS student_name",
}

func scanLeave(row pgx.Row) (*models.Leave, error) {
	var leave models.Leave
	err := row.Scan(
		&leave.ID, &leave.StudentID, &leave.RoomNumber, &leave.StartDate, &leave.EndDate,
		&leave.Reason, &leave.Destination, &leave.Status, &leave.ApprovedBy, &leave.RejectionReason,
		&leave.CreatedAt, &leave.UpdatedAt,
		&leave.StudentName,
	)
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// CreateLeave inserts a new leave application and returns its ID.
// New applications always start in PENDING.
func (r *LeaveRepository) CreateLeave(ctx context.Context, leave *models.Leave) (int64, error) {
	sql, args, err := r.sb.Insert("leaves").
		Columns("student_id", "room_number", "start_date", "end_date",
			"reason", "destination", "status").
		Values(leave.StudentID, leave.RoomNumber, leave.StartDate, leave.EndDate,
			leave.Reason, leave.Destination, models.LeavePending).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create leave query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create leave query")
		return 0, fmt.Errorf("error inserting leave application: %w", err)
	}

	logger.Info().Int64("leaveID", id).Msg("Leave application created successfully")
	return id, nil
}

// GetLeaveByID retrieves a leave application by ID including the student's name
func (r *LeaveRepository) GetLeaveByID(ctx context.Context, id int64) (*models.Leave, error) {
	sql, args, err := r.sb.Select(leaveSelectColumns...).
		From("leaves l").
		LeftJoin("users u ON l.student_id = u.id").
		Where(squirrel.Eq{"l.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get leave query: %w", err)
	}

	leave, err := scanLeave(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("leaveID", id).Msg("Leave application not found by ID")
			return nil, apperrors.ErrLeaveNotFound
		}
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error scanning leave row by ID")
		return nil, fmt.Errorf("error querying leave ID=%d: %w", id, err)
	}
	return leave, nil
}

// GetAllLeaves retrieves leave applications with pagination and optional filtering/sorting
func (r *LeaveRepository) GetAllLeaves(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Leave, int, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.sb.Select(leaveSelectColumns...).
		From("leaves l").
		LeftJoin("users u ON l.student_id = u.id")

	countSelect := r.sb.Select("COUNT(*)").
		From("leaves l").
		LeftJoin("users u ON l.student_id = u.id")

	whereCondition := squirrel.And{}
	if studentID, ok := filters["student_id"].(int64); ok && studentID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"l.student_id": studentID})
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"l.status": status})
	}
	if roomNumber, ok := filters["room_number"].(string); ok && roomNumber != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"l.room_number": roomNumber})
	}
	if search, ok := filters["search"].(string); ok && search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"l.reason": pattern},
			squirrel.ILike{"l.destination": pattern},
		})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count leaves query: %w", err)
	}

	var totalItems int
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count leaves query")
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	if totalItems == 0 {
		return []models.Leave{}, 0, nil
	}

	sortColumn, sortOrder := resolveSort(filters, map[string]string{
		"createdAt":  "l.created_at",
		"updatedAt":  "l.updated_at",
		"startDate":  "l.start_date",
		"endDate":    "l.end_date",
		"status":     "l.status",
		"roomNumber": "l.room_number",
	}, "l.created_at", "DESC")

	baseSelect = baseSelect.OrderBy(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Limit(uint64(pageSize)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get leaves query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get leaves query")
		return nil, 0, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	leaves := []models.Leave{}
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave row: %w", err)
		}
		leaves = append(leaves, *leave)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating leave rows: %w", err)
	}

	return leaves, totalItems, nil
}

// TransitionStatus moves a leave application to APPROVED or REJECTED inside
// a transaction. The row is locked so concurrent decisions serialize;
// re-applying the current decision is a no-op, changing a settled decision
// fails with ErrInvalidTransition.
func (r *LeaveRepository) TransitionStatus(ctx context.Context, id int64, to models.LeaveStatus, approvedBy string, rejectionReason *string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.LeaveStatus
		err := tx.QueryRow(ctx,
			"SELECT status FROM leaves WHERE id = $1 FOR UPDATE", id,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrLeaveNotFound
			}
			return fmt.Errorf("error locking leave ID=%d: %w", id, err)
		}

		if err := lifecycle.ValidateLeaveTransition(current, to); err != nil {
			return err
		}
		if current == to {
			// Idempotent repeat of the same decision, nothing to write
			return nil
		}

		update := r.sb.Update("leaves").
			Set("status", to).
			Set("approved_by", approvedBy).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id})
		if to == models.LeaveRejected && rejectionReason != nil {
			update = update.Set("rejection_reason", *rejectionReason)
		}

		sql, args, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build leave transition query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating leave ID=%d: %w", id, err)
		}

		logger.Info().Int64("leaveID", id).
			Str("from", string(current)).Str("to", string(to)).
			Msg("Leave application status updated")
		return nil
	})
}

// DeleteLeave removes a leave application
func (r *LeaveRepository) DeleteLeave(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("leaves").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete leave query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error executing delete leave query")
		return fmt.Errorf("error deleting leave ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLeaveNotFound
	}

	logger.Info().Int64("leaveID", id).Msg("Leave application deleted successfully")
	return nil
}

// ListOrphanIDs returns leave IDs whose student no longer exists.
func (r *LeaveRepository) ListOrphanIDs(ctx context.Context) ([]int64, error) {
	return listOrphanIDs(ctx, r.db, "leaves")
}

// DeleteOrphans removes leave applications whose student no longer exists.
func (r *LeaveRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	return deleteOrphans(ctx, r.db, "leaves")
}
