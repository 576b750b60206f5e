package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hostelease/hostelease/internal/app/lifecycle"
	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

// feePaymentStore is the slice of the fee payment repository the service needs.
type feePaymentStore interface {
	CreateFeePayment(ctx context.Context, payment *models.FeePayment) (int64, error)
	GetFeePaymentByID(ctx context.Context, id int64) (*models.FeePayment, error)
	GetAllFeePayments(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.FeePayment, int, error)
	UpdateFeePayment(ctx context.Context, id int64, fields map[string]interface{}) error
	MarkPaid(ctx context.Context, id int64, transactionID, paymentMethod string, paidDate time.Time) error
	TransitionStatus(ctx context.Context, id int64, to models.FeeStatus, remarks *string) error
	DeleteFeePayment(ctx context.Context, id int64) error
	GetStats(ctx context.Context, studentID int64, academicYear string) (*models.FeeStats, error)
}

// FeePaymentService defines the interface for fee payment operations
type FeePaymentService interface {
	CreateFeePayment(ctx context.Context, req *dto.CreateFeePaymentRequest) (*models.FeePayment, error)
	GetFeePaymentByID(ctx context.Context, id int64) (*models.FeePayment, error)
	GetAllFeePayments(ctx context.Context, filter *dto.FeePaymentFilterRequest) ([]models.FeePayment, dto.PaginationInfo, error)
	UpdateFeePayment(ctx context.Context, id int64, req *dto.UpdateFeePaymentRequest) (*models.FeePayment, error)
	PayFee(ctx context.Context, id int64, req *dto.PayFeeRequest) (*models.FeePayment, error)
	UpdateStatus(ctx context.Context, id int64, req *dto.UpdateFeeStatusRequest) (*models.FeePayment, error)
	DeleteFeePayment(ctx context.Context, id int64) error
	GetStats(ctx context.Context, filter *dto.FeeStatsFilterRequest) (*models.FeeStats, error)
}

// feePaymentServiceImpl implements FeePaymentService
type feePaymentServiceImpl struct {
	feeRepo feePaymentStore
	now     func() time.Time
}

// NewFeePaymentService creates a new FeePaymentService
func NewFeePaymentService(feeRepo feePaymentStore) FeePaymentService {
	return &feePaymentServiceImpl{
		feeRepo: feeRepo,
		now:     time.Now,
	}
}

// parseAmount converts a form amount string into a positive number.
func parseAmount(value string) (float64, error) {
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid amount: %s", value))
	}
	if amount <= 0 {
		return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Amount must be positive")
	}
	return amount, nil
}

// CreateFeePayment records a new fee demand in PENDING
func (s *feePaymentServiceImpl) CreateFeePayment(ctx context.Context, req *dto.CreateFeePaymentRequest) (*models.FeePayment, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	dueDate, err := helpers.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid due date: %s", req.DueDate))
	}

	payment := &models.FeePayment{
		StudentID:    req.StudentID,
		FeeType:      req.FeeType,
		Amount:       amount,
		DueDate:      dueDate,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Remarks:      req.Remarks,
	}

	id, err := s.feeRepo.CreateFeePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	return s.feeRepo.GetFeePaymentByID(ctx, id)
}

// GetFeePaymentByID retrieves a single fee payment
func (s *feePaymentServiceImpl) GetFeePaymentByID(ctx context.Context, id int64) (*models.FeePayment, error) {
	return s.feeRepo.GetFeePaymentByID(ctx, id)
}

// GetAllFeePayments retrieves a filtered, paginated fee payment list
func (s *feePaymentServiceImpl) GetAllFeePayments(ctx context.Context, filter *dto.FeePaymentFilterRequest) ([]models.FeePayment, dto.PaginationInfo, error) {
	_, pageSize := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	filters := map[string]interface{}{
		"student_id":    filter.StudentID,
		"status":        filter.Status,
		"fee_type":      filter.FeeType,
		"semester":      filter.Semester,
		"academic_year": filter.AcademicYear,
		"search":        filter.Search,
		"sortBy":        filter.SortBy,
		"sortOrder":     filter.SortOrder,
	}

	payments, total, err := s.feeRepo.GetAllFeePayments(ctx, page, pageSize, filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error getting fee payments: %w", err)
	}

	return payments, helpers.NewPaginationInfo(int64(total), page, pageSize), nil
}

// UpdateFeePayment applies a partial update to a fee payment's descriptive
// fields. Status changes go through PayFee or UpdateStatus.
func (s *feePaymentServiceImpl) UpdateFeePayment(ctx context.Context, id int64, req *dto.UpdateFeePaymentRequest) (*models.FeePayment, error) {
	fields := map[string]interface{}{}
	if req.FeeType != nil {
		fields["fee_type"] = *req.FeeType
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		fields["amount"] = amount
	}
	if req.DueDate != nil {
		dueDate, err := helpers.ParseDate(*req.DueDate)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid due date: %s", *req.DueDate))
		}
		fields["due_date"] = dueDate
	}
	if req.Semester != nil {
		fields["semester"] = *req.Semester
	}
	if req.AcademicYear != nil {
		fields["academic_year"] = *req.AcademicYear
	}
	if req.Remarks != nil {
		fields["remarks"] = *req.Remarks
	}

	if len(fields) > 0 {
		if err := s.feeRepo.UpdateFeePayment(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.feeRepo.GetFeePaymentByID(ctx, id)
}

// PayFee settles a payment. A second payment attempt fails and the original
// transaction evidence is preserved.
func (s *feePaymentServiceImpl) PayFee(ctx context.Context, id int64, req *dto.PayFeeRequest) (*models.FeePayment, error) {
	paidDate := s.now()
	if req.PaidDate != nil {
		parsed, err := helpers.ParseDate(*req.PaidDate)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("Invalid paid date: %s", *req.PaidDate))
		}
		paidDate = parsed
	}

	if err := s.feeRepo.MarkPaid(ctx, id, req.TransactionID, req.PaymentMethod, paidDate); err != nil {
		return nil, err
	}

	return s.feeRepo.GetFeePaymentByID(ctx, id)
}

// UpdateStatus applies a staff status override. PAID records cannot be moved.
func (s *feePaymentServiceImpl) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateFeeStatusRequest) (*models.FeePayment, error) {
	to := models.FeeStatus(req.Status)
	if !lifecycle.ValidFeeStatus(to) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, fmt.Sprintf("Invalid fee status: %s", req.Status))
	}

	if err := s.feeRepo.TransitionStatus(ctx, id, to, req.Remarks); err != nil {
		return nil, err
	}

	return s.feeRepo.GetFeePaymentByID(ctx, id)
}

// DeleteFeePayment removes a fee payment
func (s *feePaymentServiceImpl) DeleteFeePayment(ctx context.Context, id int64) error {
	return s.feeRepo.DeleteFeePayment(ctx, id)
}

// GetStats aggregates payment counters for the dashboard
func (s *feePaymentServiceImpl) GetStats(ctx context.Context, filter *dto.FeeStatsFilterRequest) (*models.FeeStats, error) {
	var studentID int64
	academicYear := ""
	if filter != nil {
		studentID = filter.StudentID
		academicYear = filter.AcademicYear
	}
	return s.feeRepo.GetStats(ctx, studentID, academicYear)
}
