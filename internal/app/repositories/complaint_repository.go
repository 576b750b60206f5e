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

// ComplaintRepository handles complaint database operations
type ComplaintRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(db *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var complaintSelectColumns = []string{
	"c.id", "c.title", "c.description", "c.category", "c.status",
	"c.student_id", "c.room_number", "c.resolution_notes", "c.resolved_by",
	"c.created_at", "c.updated_at",
	"COALESCE(u.name, 'Unknown Student') AS student_name",
	"COALESCE(u.email, '') AS student_email",
}

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var complaint models.Complaint
	err := row.Scan(
		&complaint.ID, &complaint.Title, &complaint.Description, &complaint.Category,
		&complaint.Status, &complaint.StudentID, &complaint.RoomNumber,
		&complaint.ResolutionNotes, &complaint.ResolvedBy,
		&complaint.CreatedAt, &complaint.UpdatedAt,
		&complaint.StudentName, &complaint.StudentEmail,
	)
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// CreateComplaint inserts a new complaint and returns its ID.
// New complaints always start in PENDING.
func (r *ComplaintRepository) CreateComplaint(ctx context.Context, complaint *models.Complaint) (int64, error) {
	sql, args, err := r.sb.Insert("complaints").
		Columns("title", "description", "category", "status", "student_id", "room_number").
		Values(complaint.Title, complaint.Description, complaint.Category,
			models.ComplaintPending, complaint.StudentID, complaint.RoomNumber).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create complaint query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create complaint query")
		return 0, fmt.Errorf("error inserting complaint: %w", err)
	}

	logger.Info().Int64("complaintID", id).Msg("Complaint created successfully")
	return id, nil
}

// GetComplaintByID retrieves a complaint by ID including the student's name and email
func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error) {
	sql, args, err := r.sb.Select(complaintSelectColumns...).
		From("complaints c").
		LeftJoin("users u ON c.student_id = u.id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get complaint query: %w", err)
	}

	complaint, err := scanComplaint(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("complaintID", id).Msg("Complaint not found by ID")
			return nil, apperrors.ErrComplaintNotFound
		}
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error scanning complaint row by ID")
		return nil, fmt.Errorf("error querying complaint ID=%d: %w", id, err)
	}
	return complaint, nil
}

// GetAllComplaints retrieves complaints with pagination and optional filtering/sorting
func (r *ComplaintRepository) GetAllComplaints(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Complaint, int, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.sb.Select(complaintSelectColumns...).
		From("complaints c").
		LeftJoin("users u ON c.student_id = u.id")

	countSelect := r.sb.Select("COUNT(*)").
		From("complaints c").
		LeftJoin("users u ON c.student_id = u.id")

	whereCondition := squirrel.And{}
	if studentID, ok := filters["student_id"].(int64); ok && studentID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"c.student_id": studentID})
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"c.status": status})
	}
	if category, ok := filters["category"].(string); ok && category != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"c.category": category})
	}
	if roomNumber, ok := filters["room_number"].(string); ok && roomNumber != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"c.room_number": roomNumber})
	}
	if search, ok := filters["search"].(string); ok && search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"c.title": pattern},
			squirrel.ILike{"c.description": pattern},
		})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count complaints query: %w", err)
	}

	var totalItems int
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count complaints query")
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	if totalItems == 0 {
		return []models.Complaint{}, 0, nil
	}

	sortColumn, sortOrder := resolveSort(filters, map[string]string{
		"createdAt":  "c.created_at",
		"updatedAt":  "c.updated_at",
		"status":     "c.status",
		"category":   "c.category",
		"title":      "c.title",
		"roomNumber": "c.room_number",
	}, "c.created_at", "DESC")

	baseSelect = baseSelect.OrderBy(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Limit(uint64(pageSize)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get complaints query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get complaints query")
		return nil, 0, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan complaint row: %w", err)
		}
		complaints = append(complaints, *complaint)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating complaint rows: %w", err)
	}

	return complaints, totalItems, nil
}

// TransitionStatus moves a complaint to a new status inside a transaction.
// The current row is locked so concurrent transitions serialize, and the
// workflow table is consulted against the locked status, not a stale read.
func (r *ComplaintRepository) TransitionStatus(ctx context.Context, id int64, to models.ComplaintStatus, resolutionNotes, resolvedBy *string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.ComplaintStatus
		err := tx.QueryRow(ctx,
			"SELECT status FROM complaints WHERE id = $1 FOR UPDATE", id,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrComplaintNotFound
			}
			return fmt.Errorf("error locking complaint ID=%d: %w", id, err)
		}

		if err := lifecycle.ValidateComplaintTransition(current, to); err != nil {
			return err
		}

		update := r.sb.Update("complaints").
			Set("status", to).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id})
		if resolutionNotes != nil {
			update = update.Set("resolution_notes", *resolutionNotes)
		}
		if resolvedBy != nil {
			update = update.Set("resolved_by", *resolvedBy)
		}

		sql, args, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build complaint transition query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating complaint ID=%d: %w", id, err)
		}

		logger.Info().Int64("complaintID", id).
			Str("from", string(current)).Str("to", string(to)).
			Msg("Complaint status updated")
		return nil
	})
}

// DeleteComplaint removes a complaint
func (r *ComplaintRepository) DeleteComplaint(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("complaints").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete complaint query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error executing delete complaint query")
		return fmt.Errorf("error deleting complaint ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrComplaintNotFound
	}

	logger.Info().Int64("complaintID", id).Msg("Complaint deleted successfully")
	return nil
}

// ListOrphanIDs returns complaint IDs whose student no longer exists.
func (r *ComplaintRepository) ListOrphanIDs(ctx context.Context) ([]int64, error) {
	return listOrphanIDs(ctx, r.db, "complaints")
}

// DeleteOrphans removes complaints whose student no longer exists.
func (r *ComplaintRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	return deleteOrphans(ctx, r.db, "complaints")
}
