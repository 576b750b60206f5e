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

	"github.com/hostelease/hostelease/internal/app/lifecycle"
	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/db"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// FeePaymentRepository handles fee payment database operations
type FeePaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeePaymentRepository creates a new FeePaymentRepository
func NewFeePaymentRepository(db *pgxpool.Pool) *FeePaymentRepository {
	return &FeePaymentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var feePaymentSelectColumns = []string{
	"f.id", "f.student_id", "f.fee_type", "f.amount", "f.due_date",
	"f.semester", "f.academic_year", "f.status", "f.transaction_id",
	"f.payment_method", "f.paid_date", "f.remarks", "f.created_at", "f.updated_at",
	"COALESCE(u.name, 'Unknown Student') AS student_name",
	"COALESCE(u.email, '') AS student_email",
	"COALESCE(u.room_number, '') AS room_number",
}

func scanFeePayment(row pgx.Row) (*models.FeePayment, error) {
	var payment models.FeePayment
	err := row.Scan(
		&payment.ID, &payment.StudentID, &payment.FeeType, &payment.Amount, &payment.DueDate,
		&payment.Semester, &payment.AcademicYear, &payment.Status, &payment.TransactionID,
		&payment.PaymentMethod, &payment.PaidDate, &payment.Remarks,
		&payment.CreatedAt, &payment.UpdatedAt,
		&payment.StudentName, &payment.StudentEmail, &payment.RoomNumber,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreateFeePayment inserts a new fee payment and returns its ID.
// New payments always start in PENDING.
func (r *FeePaymentRepository) CreateFeePayment(ctx context.Context, payment *models.FeePayment) (int64, error) {
	sql, args, err := r.sb.Insert("fee_payments").
		Columns("student_id", "fee_type", "amount", "due_date", "semester",
			"academic_year", "status", "remarks").
		Values(payment.StudentID, payment.FeeType, payment.Amount, payment.DueDate,
			payment.Semester, payment.AcademicYear, models.FeePending, payment.Remarks).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create fee payment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create fee payment query")
		return 0, fmt.Errorf("error inserting fee payment: %w", err)
	}

	logger.Info().Int64("feePaymentID", id).Msg("Fee payment created successfully")
	return id, nil
}

// GetFeePaymentByID retrieves a fee payment by ID including student details
func (r *FeePaymentRepository) GetFeePaymentByID(ctx context.Context, id int64) (*models.FeePayment, error) {
	sql, args, err := r.sb.Select(feePaymentSelectColumns...).
		From("fee_payments f").
		LeftJoin("users u ON f.student_id = u.id").
		Where(squirrel.Eq{"f.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fee payment query: %w", err)
	}

	payment, err := scanFeePayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("feePaymentID", id).Msg("Fee payment not found by ID")
			return nil, apperrors.ErrFeePaymentNotFound
		}
		logger.Error().Err(err).Int64("feePaymentID", id).Msg("Error scanning fee payment row by ID")
		return nil, fmt.Errorf("error querying fee payment ID=%d: %w", id, err)
	}
	return payment, nil
}

// GetAllFeePayments retrieves fee payments with pagination and optional filtering/sorting
func (r *FeePaymentRepository) GetAllFeePayments(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.FeePayment, int, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.sb.Select(feePaymentSelectColumns...).
		From("fee_payments f").
		LeftJoin("users u ON f.student_id = u.id")

	countSelect := r.sb.Select("COUNT(*)").
		From("fee_payments f").
		LeftJoin("users u ON f.student_id = u.id")

	whereCondition := feePaymentFilterCondition(filters)
	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count fee payments query: %w", err)
	}

	var totalItems int
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count fee payments query")
		return nil, 0, fmt.Errorf("failed to count fee payments: %w", err)
	}

	if totalItems == 0 {
		return []models.FeePayment{}, 0, nil
	}

	sortColumn, sortOrder := resolveSort(filters, map[string]string{
		"createdAt":    "f.created_at",
		"updatedAt":    "f.updated_at",
		"dueDate":      "f.due_date",
		"paidDate":     "f.paid_date",
		"amount":       "f.amount",
		"status":       "f.status",
		"feeType":      "f.fee_type",
		"academicYear": "f.academic_year",
	}, "f.created_at", "DESC")

	baseSelect = baseSelect.OrderBy(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Limit(uint64(pageSize)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get fee payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get fee payments query")
		return nil, 0, fmt.Errorf("failed to query fee payments: %w", err)
	}
	defer rows.Close()

	payments := []models.FeePayment{}
	for rows.Next() {
		payment, err := scanFeePayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan fee payment row: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating fee payment rows: %w", err)
	}

	return payments, totalItems, nil
}

func feePaymentFilterCondition(filters map[string]interface{}) squirrel.And {
	whereCondition := squirrel.And{}
	if studentID, ok := filters["student_id"].(int64); ok && studentID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"f.student_id": studentID})
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"f.status": status})
	}
	if feeType, ok := filters["fee_type"].(string); ok && feeType != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"f.fee_type": feeType})
	}
	if semester, ok := filters["semester"].(string); ok && semester != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"f.semester": semester})
	}
	if academicYear, ok := filters["academic_year"].(string); ok && academicYear != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"f.academic_year": academicYear})
	}
	if search, ok := filters["search"].(string); ok && search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"f.transaction_id": pattern},
			squirrel.ILike{"f.remarks": pattern},
		})
	}
	return whereCondition
}

// UpdateFeePayment applies a partial update to a fee payment. Only the
// provided fields are written.
func (r *FeePaymentRepository) UpdateFeePayment(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.sb.Update("fee_payments").
		SetMap(fields).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fee payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("feePaymentID", id).Msg("Error executing update fee payment query")
		return fmt.Errorf("error updating fee payment ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeePaymentNotFound
	}

	logger.Info().Int64("feePaymentID", id).Msg("Fee payment updated successfully")
	return nil
}

// MarkPaid settles a fee payment inside a transaction. The row is locked so
// two concurrent payments cannot both succeed; a second attempt fails with
// ErrAlreadyPaid and the original payment evidence is preserved.
func (r *FeePaymentRepository) MarkPaid(ctx context.Context, id int64, transactionID, paymentMethod string, paidDate time.Time) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.FeeStatus
		err := tx.QueryRow(ctx,
			"SELECT status FROM fee_payments WHERE id = $1 FOR UPDATE", id,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrFeePaymentNotFound
			}
			return fmt.Errorf("error locking fee payment ID=%d: %w", id, err)
		}

		if current == models.FeePaid {
			return apperrors.ErrAlreadyPaid
		}

		sql, args, err := r.sb.Update("fee_payments").
			SetMap(map[string]interface{}{
				"status":         models.FeePaid,
				"transaction_id": transactionID,
				"payment_method": paymentMethod,
				"paid_date":      paidDate,
				"updated_at":     squirrel.Expr("NOW()"),
			}).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build mark paid query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error marking fee payment paid ID=%d: %w", id, err)
		}

		logger.Info().Int64("feePaymentID", id).Str("transactionID", transactionID).Msg("Fee payment settled")
		return nil
	})
}

// TransitionStatus applies a staff status override inside a transaction.
// PAID is terminal, so a settled payment cannot be moved; everything else
// may move freely among the non-PAID statuses.
func (r *FeePaymentRepository) TransitionStatus(ctx context.Context, id int64, to models.FeeStatus, remarks *string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.FeeStatus
		err := tx.QueryRow(ctx,
			"SELECT status FROM fee_payments WHERE id = $1 FOR UPDATE", id,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrFeePaymentNotFound
			}
			return fmt.Errorf("error locking fee payment ID=%d: %w", id, err)
		}

		if err := lifecycle.ValidateFeeTransition(current, to); err != nil {
			return err
		}

		update := r.sb.Update("fee_payments").
			Set("status", to).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id})
		if remarks != nil {
			update = update.Set("remarks", *remarks)
		}

		sql, args, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build fee status query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating fee payment status ID=%d: %w", id, err)
		}

		logger.Info().Int64("feePaymentID", id).
			Str("from", string(current)).Str("to", string(to)).
			Msg("Fee payment status updated")
		return nil
	})
}

// DeleteFeePayment removes a fee payment
func (r *FeePaymentRepository) DeleteFeePayment(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("fee_payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete fee payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("feePaymentID", id).Msg("Error executing delete fee payment query")
		return fmt.Errorf("error deleting fee payment ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeePaymentNotFound
	}

	logger.Info().Int64("feePaymentID", id).Msg("Fee payment deleted successfully")
	return nil
}

// GetStats aggregates payment counters, optionally scoped to a student
// and/or academic year.
func (r *FeePaymentRepository) GetStats(ctx context.Context, studentID int64, academicYear string) (*models.FeeStats, error) {
	selectBuilder := r.sb.Select(
		"COUNT(*) FILTER (WHERE status = 'PAID') AS total_paid",
		"COUNT(*) FILTER (WHERE status = 'PENDING') AS total_pending",
		"COUNT(*) FILTER (WHERE status = 'OVERDUE') AS total_overdue",
		"COALESCE(SUM(amount), 0) AS total_amount",
		"COALESCE(SUM(amount) FILTER (WHERE status = 'PAID'), 0) AS paid_amount",
	).From("fee_payments")

	if studentID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": studentID})
	}
	if academicYear != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"academic_year": academicYear})
	}

	sql, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build fee stats query: %w", err)
	}

	var stats models.FeeStats
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&stats.TotalPaid, &stats.TotalPending, &stats.TotalOverdue,
		&stats.TotalAmount, &stats.PaidAmount,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing fee stats query")
		return nil, fmt.Errorf("failed to query fee stats: %w", err)
	}

	stats.PendingAmount = stats.TotalAmount - stats.PaidAmount
	return &stats, nil
}

// ListOrphanIDs returns fee payment IDs whose student no longer exists.
func (r *FeePaymentRepository) ListOrphanIDs(ctx context.Context) ([]int64, error) {
	return listOrphanIDs(ctx, r.db, "fee_payments")
}

// DeleteOrphans removes fee payments whose student no longer exists.
func (r *FeePaymentRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	return deleteOrphans(ctx, r.db, "fee_payments")
}
