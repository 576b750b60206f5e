package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

func newLeaveRequest() *dto.CreateLeaveRequest {
	return &dto.CreateLeaveRequest{
		StudentID:   1,
		RoomNumber:  "R101",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-14",
		Reason:      "Family function",
		Destination: "Home",
	}
}

func TestCreateLeaveStartsPending(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	leave, err := svc.CreateLeave(context.Background(), newLeaveRequest())
	require.NoError(t, err)

	assert.Equal(t, models.LeavePending, leave.Status)
	assert.Equal(t, "Home", leave.Destination)
}

func TestCreateLeaveAllowsSingleDay(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	req := newLeaveRequest()
	req.EndDate = req.StartDate
	leave, err := svc.CreateLeave(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, leave.StartDate, leave.EndDate)
}

func TestCreateLeaveRejectsInvertedDates(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	req := newLeaveRequest()
	req.StartDate = "2026-09-14"
	req.EndDate = "2026-09-10"
	_, err := svc.CreateLeave(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateLeaveRejectsMalformedDates(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	req := newLeaveRequest()
	req.StartDate = "next tuesday"
	_, err := svc.CreateLeave(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestApproveLeave(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	leave, err := svc.CreateLeave(context.Background(), newLeaveRequest())
	require.NoError(t, err)

	approved, err := svc.ApproveLeave(context.Background(), leave.ID, &dto.ApproveLeaveRequest{ApprovedBy: "Hostel Warden"})
	require.NoError(t, err)

	assert.Equal(t, models.LeaveApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "Hostel Warden", *approved.ApprovedBy)
	assert.Nil(t, approved.RejectionReason)
}

func TestRejectLeave(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	leave, err := svc.CreateLeave(context.Background(), newLeaveRequest())
	require.NoError(t, err)

	rejected, err := svc.RejectLeave(context.Background(), leave.ID, &dto.RejectLeaveRequest{
		ApprovedBy:      "Hostel Warden",
		RejectionReason: "Exam week",
	})
	require.NoError(t, err)

	assert.Equal(t, models.LeaveRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Exam week", *rejected.RejectionReason)
}

func TestLeaveDecisionIsFinal(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	leave, err := svc.CreateLeave(context.Background(), newLeaveRequest())
	require.NoError(t, err)

	_, err = svc.ApproveLeave(context.Background(), leave.ID, &dto.ApproveLeaveRequest{ApprovedBy: "Hostel Warden"})
	require.NoError(t, err)

	// An approved leave cannot flip to rejected
	_, err = svc.RejectLeave(context.Background(), leave.ID, &dto.RejectLeaveRequest{
		ApprovedBy:      "Hostel Admin",
		RejectionReason: "Changed my mind",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// Re-approving is an idempotent no-op that keeps the original approver
	again, err := svc.ApproveLeave(context.Background(), leave.ID, &dto.ApproveLeaveRequest{ApprovedBy: "Hostel Admin"})
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, again.Status)
	require.NotNil(t, again.ApprovedBy)
	assert.Equal(t, "Hostel Warden", *again.ApprovedBy)
}

func TestApproveLeaveNotFound(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveStore())

	_, err := svc.ApproveLeave(context.Background(), 999, &dto.ApproveLeaveRequest{ApprovedBy: "Hostel Warden"})
	assert.ErrorIs(t, err, apperrors.ErrLeaveNotFound)
}
