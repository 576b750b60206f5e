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

func newComplaintRequest() *dto.CreateComplaintRequest {
	return &dto.CreateComplaintRequest{
		Title:       "Broken fan",
		Description: "Ceiling fan in R101 stopped working",
		Category:    "MAINTENANCE",
		StudentID:   1,
		RoomNumber:  "R101",
	}
}

func TestCreateComplaintStartsPending(t *testing.T) {
	store := newFakeComplaintStore()
	svc := NewComplaintService(store)

	complaint, err := svc.CreateComplaint(context.Background(), newComplaintRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintPending, complaint.Status)
	assert.Equal(t, "Broken fan", complaint.Title)
	assert.Equal(t, int64(1), complaint.StudentID)
}

func TestUpdateComplaintStatus(t *testing.T) {
	store := newFakeComplaintStore()
	svc := NewComplaintService(store)

	complaint, err := svc.CreateComplaint(context.Background(), newComplaintRequest())
	require.NoError(t, err)

	notes := "Fan motor replaced"
	resolver := "Hostel Warden"
	updated, err := svc.UpdateStatus(context.Background(), complaint.ID, &dto.UpdateComplaintStatusRequest{
		Status:          string(models.ComplaintResolved),
		ResolutionNotes: &notes,
		ResolvedBy:      &resolver,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintResolved, updated.Status)
	require.NotNil(t, updated.ResolutionNotes)
	assert.Equal(t, notes, *updated.ResolutionNotes)
	require.NotNil(t, updated.ResolvedBy)
	assert.Equal(t, resolver, *updated.ResolvedBy)
}

func TestUpdateComplaintStatusFromTerminal(t *testing.T) {
	store := newFakeComplaintStore()
	svc := NewComplaintService(store)

	complaint, err := svc.CreateComplaint(context.Background(), newComplaintRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), complaint.ID, &dto.UpdateComplaintStatusRequest{
		Status: string(models.ComplaintRejected),
	})
	require.NoError(t, err)

	// A rejected complaint cannot be reopened
	_, err = svc.UpdateStatus(context.Background(), complaint.ID, &dto.UpdateComplaintStatusRequest{
		Status: string(models.ComplaintInProgress),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestUpdateComplaintStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeComplaintStore()
	svc := NewComplaintService(store)

	complaint, err := svc.CreateComplaint(context.Background(), newComplaintRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), complaint.ID, &dto.UpdateComplaintStatusRequest{
		Status: "ESCALATED",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestUpdateComplaintStatusNotFound(t *testing.T) {
	svc := NewComplaintService(newFakeComplaintStore())

	_, err := svc.UpdateStatus(context.Background(), 999, &dto.UpdateComplaintStatusRequest{
		Status: string(models.ComplaintResolved),
	})
	assert.ErrorIs(t, err, apperrors.ErrComplaintNotFound)
}

func TestGetAllComplaintsPagination(t *testing.T) {
	store := newFakeComplaintStore()
	svc := NewComplaintService(store)

	for i := 0; i < 15; i++ {
		_, err := svc.CreateComplaint(context.Background(), newComplaintRequest())
		require.NoError(t, err)
	}

	complaints, pagination, err := svc.GetAllComplaints(context.Background(), &dto.ComplaintFilterRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, complaints, 10)
	assert.Equal(t, int64(15), pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)

	complaints, pagination, err = svc.GetAllComplaints(context.Background(), &dto.ComplaintFilterRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, complaints, 5)
	assert.Equal(t, 2, pagination.Page)
}

func TestDeleteComplaint(t *testing.T) {
	store := newFakeComplaintStore()
	svc := NewComplaintService(store)

	complaint, err := svc.CreateComplaint(context.Background(), newComplaintRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComplaint(context.Background(), complaint.ID))

	_, err = svc.GetComplaintByID(context.Background(), complaint.ID)
	assert.ErrorIs(t, err, apperrors.ErrComplaintNotFound)

	assert.ErrorIs(t, svc.DeleteComplaint(context.Background(), complaint.ID), apperrors.ErrComplaintNotFound)
}
