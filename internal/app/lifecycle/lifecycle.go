// Package lifecycle centralizes the status workflows for complaints, leave
// applications and fee payments, plus the role policy that gates each
// transition. Services consult these tables before any write reaches the
// database, so no route handler carries its own transition rules.
package lifecycle

import (
	"fmt"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

// StaffRoles are the roles allowed to perform approval and resolution actions.
var StaffRoles = []models.RoleType{models.RoleWarden, models.RoleAdmin}

// Authorize reports whether role is a member of allowed. It is a pure
// function with no side effects.
func Authorize(role models.RoleType, allowed ...models.RoleType) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// complaintTransitions maps each complaint status to the statuses it may
// move to. RESOLVED and REJECTED are terminal.
var complaintTransitions = map[models.ComplaintStatus][]models.ComplaintStatus{
	models.ComplaintPending:    {models.ComplaintInProgress, models.ComplaintResolved, models.ComplaintRejected},
	models.ComplaintInProgress: {models.ComplaintResolved, models.ComplaintRejected},
	models.ComplaintResolved:   {},
	models.ComplaintRejected:   {},
}

// ValidComplaintStatus reports whether s is one of the defined complaint statuses.
func ValidComplaintStatus(s models.ComplaintStatus) bool {
	_, ok := complaintTransitions[s]
	return ok
}

// ValidateComplaintTransition checks a complaint status change. Setting the
// current status again is treated as an idempotent no-op and allowed.
func ValidateComplaintTransition(from, to models.ComplaintStatus) error {
	if !ValidComplaintStatus(to) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, to)
	}
	if from == to {
		return nil
	}
	for _, next := range complaintTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: complaint %s -> %s", apperrors.ErrInvalidTransition, from, to)
}

// ValidateLeaveTransition checks a leave status change. Re-applying the
// current terminal status is idempotent; moving between APPROVED and
// REJECTED is rejected — a terminal decision stands.
func ValidateLeaveTransition(from, to models.LeaveStatus) error {
	switch to {
	case models.LeaveApproved, models.LeaveRejected:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, to)
	}
	if from == to {
		return nil
	}
	if from == models.LeavePending {
		return nil
	}
	return fmt.Errorf("%w: leave %s -> %s", apperrors.ErrInvalidTransition, from, to)
}

// ValidFeeStatus reports whether s is one of the defined fee payment statuses.
func ValidFeeStatus(s models.FeeStatus) bool {
	switch s {
	case models.FeePending, models.FeePaid, models.FeeOverdue, models.FeePartiallyPaid, models.FeeWaived:
		return true
	}
	return false
}

// ValidateFeeTransition checks a fee payment status change. Any movement
// among non-PAID statuses is allowed; once PAID, the record is terminal so
// payment evidence cannot be silently erased.
func ValidateFeeTransition(from, to models.FeeStatus) error {
	if !ValidFeeStatus(to) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, to)
	}
	if from == to {
		return nil
	}
	if from == models.FeePaid {
		return fmt.Errorf("%w: fee payment %s -> %s", apperrors.ErrInvalidTransition, from, to)
	}
	return nil
}
