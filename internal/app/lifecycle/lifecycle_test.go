package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

func TestAuthorize(t *testing.T) {
	assert.True(t, Authorize(models.RoleWarden, StaffRoles...))
	assert.True(t, Authorize(models.RoleAdmin, StaffRoles...))
	assert.False(t, Authorize(models.RoleStudent, StaffRoles...))
	assert.False(t, Authorize(models.RoleStudent))
}

func TestValidateComplaintTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ComplaintStatus
		to      models.ComplaintStatus
		wantErr error
	}{
		{"pending to in progress", models.ComplaintPending, models.ComplaintInProgress, nil},
		{"pending to resolved", models.ComplaintPending, models.ComplaintResolved, nil},
		{"pending to rejected", models.ComplaintPending, models.ComplaintRejected, nil},
		{"in progress to resolved", models.ComplaintInProgress, models.ComplaintResolved, nil},
		{"in progress to rejected", models.ComplaintInProgress, models.ComplaintRejected, nil},
		{"in progress back to pending", models.ComplaintInProgress, models.ComplaintPending, apperrors.ErrInvalidTransition},
		{"resolved is terminal", models.ComplaintResolved, models.ComplaintInProgress, apperrors.ErrInvalidTransition},
		{"rejected is terminal", models.ComplaintRejected, models.ComplaintPending, apperrors.ErrInvalidTransition},
		{"same status is a no-op", models.ComplaintResolved, models.ComplaintResolved, nil},
		{"unknown target status", models.ComplaintPending, models.ComplaintStatus("BOGUS"), apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComplaintTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLeaveTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.LeaveStatus
		to      models.LeaveStatus
		wantErr error
	}{
		{"pending to approved", models.LeavePending, models.LeaveApproved, nil},
		{"pending to rejected", models.LeavePending, models.LeaveRejected, nil},
		{"re-approve is a no-op", models.LeaveApproved, models.LeaveApproved, nil},
		{"re-reject is a no-op", models.LeaveRejected, models.LeaveRejected, nil},
		{"approved cannot flip to rejected", models.LeaveApproved, models.LeaveRejected, apperrors.ErrInvalidTransition},
		{"rejected cannot flip to approved", models.LeaveRejected, models.LeaveApproved, apperrors.ErrInvalidTransition},
		{"cannot target pending", models.LeaveApproved, models.LeavePending, apperrors.ErrInvalidStatus},
		{"unknown target status", models.LeavePending, models.LeaveStatus("BOGUS"), apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLeaveTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFeeTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.FeeStatus
		to      models.FeeStatus
		wantErr error
	}{
		{"pending to paid", models.FeePending, models.FeePaid, nil},
		{"pending to overdue", models.FeePending, models.FeeOverdue, nil},
		{"overdue to waived", models.FeeOverdue, models.FeeWaived, nil},
		{"partially paid to paid", models.FeePartiallyPaid, models.FeePaid, nil},
		{"waived back to pending", models.FeeWaived, models.FeePending, nil},
		{"paid is terminal", models.FeePaid, models.FeePending, apperrors.ErrInvalidTransition},
		{"paid cannot be waived", models.FeePaid, models.FeeWaived, apperrors.ErrInvalidTransition},
		{"re-mark paid is a no-op", models.FeePaid, models.FeePaid, nil},
		{"unknown target status", models.FeePending, models.FeeStatus("BOGUS"), apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeeTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
