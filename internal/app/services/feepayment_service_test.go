package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

func newFeePaymentRequest() *dto.CreateFeePaymentRequest {
	return &dto.CreateFeePaymentRequest{
		StudentID:    1,
		FeeType:      "HOSTEL",
		Amount:       "5000",
		DueDate:      "2026-10-01",
		Semester:     "FALL",
		AcademicYear: "2026-27",
	}
}

func TestCreateFeePaymentStartsPending(t *testing.T) {
	svc := NewFeePaymentService(newFakeFeeStore())

	payment, err := svc.CreateFeePayment(context.Background(), newFeePaymentRequest())
	require.NoError(t, err)

	assert.Equal(t, models.FeePending, payment.Status)
	assert.Equal(t, 5000.0, payment.Amount)
	assert.Nil(t, payment.PaidDate)
}

func TestCreateFeePaymentRejectsBadAmount(t *testing.T) {
	svc := NewFeePaymentService(newFakeFeeStore())

	for _, amount := range []string{"abc", "-50", "0"} {
		req := newFeePaymentRequest()
		req.Amount = amount
		_, err := svc.CreateFeePayment(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "amount %q", amount)
	}
}

func TestPayFee(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := &feePaymentServiceImpl{
		feeRepo: newFakeFeeStore(),
		now:     func() time.Time { return now },
	}

	payment, err := svc.CreateFeePayment(context.Background(), newFeePaymentRequest())
	require.NoError(t, err)

	paid, err := svc.PayFee(context.Background(), payment.ID, &dto.PayFeeRequest{
		TransactionID: "TXN-1001",
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)

	assert.Equal(t, models.FeePaid, paid.Status)
	require.NotNil(t, paid.TransactionID)
	assert.Equal(t, "TXN-1001", *paid.TransactionID)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, now, *paid.PaidDate)
}

func TestPayFeeTwicePreservesOriginalTransaction(t *testing.T) {
	svc := NewFeePaymentService(newFakeFeeStore())

	payment, err := svc.CreateFeePayment(context.Background(), newFeePaymentRequest())
	require.NoError(t, err)

	_, err = svc.PayFee(context.Background(), payment.ID, &dto.PayFeeRequest{
		TransactionID: "TXN-1001",
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)

	_, err = svc.PayFee(context.Background(), payment.ID, &dto.PayFeeRequest{
		TransactionID: "TXN-9999",
		PaymentMethod: "CASH",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPaid)

	kept, err := svc.GetFeePaymentByID(context.Background(), payment.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.TransactionID)
	assert.Equal(t, "TXN-1001", *kept.TransactionID)
}

func TestUpdateFeeStatus(t *testing.T) {
	svc := NewFeePaymentService(newFakeFeeStore())

	payment, err := svc.CreateFeePayment(context.Background(), newFeePaymentRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), payment.ID, &dto.UpdateFeeStatusRequest{
		Status: string(models.FeeOverdue),
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeOverdue, updated.Status)

	// PAID is terminal: a paid record cannot be moved back
	_, err = svc.PayFee(context.Background(), payment.ID, &dto.PayFeeRequest{
		TransactionID: "TXN-1001",
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), payment.ID, &dto.UpdateFeeStatusRequest{
		Status: string(models.FeePending),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestUpdateFeeStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewFeePaymentService(newFakeFeeStore())

	payment, err := svc.CreateFeePayment(context.Background(), newFeePaymentRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), payment.ID, &dto.UpdateFeeStatusRequest{Status: "REFUNDED"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestGetFeeStats(t *testing.T) {
	store := newFakeFeeStore()
	store.stats = &models.FeeStats{
		TotalPaid:     3,
		TotalPending:  2,
		TotalOverdue:  1,
		TotalAmount:   30000,
		PaidAmount:    18000,
		PendingAmount: 12000,
	}
	svc := NewFeePaymentService(store)

	stats, err := svc.GetStats(context.Background(), &dto.FeeStatsFilterRequest{StudentID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalPaid)
	// Pending amount is whatever has been billed but not settled
	assert.Equal(t, stats.TotalAmount-stats.PaidAmount, stats.PendingAmount)
}
