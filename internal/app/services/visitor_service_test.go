package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
)

func newVisitorRequest() *dto.CreateVisitorRequest {
	return &dto.CreateVisitorRequest{
		VisitorName:      "John Doe",
		VisitorContact:   "+911234567890",
		Purpose:          "Family visit",
		StudentID:        1,
		RoomNumber:       "R101",
		ExpectedDuration: 60,
	}
}

func TestCreateVisitorStampsEntryTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	svc := &visitorServiceImpl{
		visitorRepo: newFakeVisitorStore(),
		now:         func() time.Time { return now },
	}

	visitor, err := svc.CreateVisitor(context.Background(), newVisitorRequest())
	require.NoError(t, err)

	assert.Equal(t, now, visitor.EntryTime)
	assert.Nil(t, visitor.ExitTime)
	assert.Equal(t, 60, visitor.ExpectedDuration)
}

func TestMarkExit(t *testing.T) {
	entry := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	exit := entry.Add(45 * time.Minute)
	current := entry
	svc := &visitorServiceImpl{
		visitorRepo: newFakeVisitorStore(),
		now:         func() time.Time { return current },
	}

	visitor, err := svc.CreateVisitor(context.Background(), newVisitorRequest())
	require.NoError(t, err)

	current = exit
	exited, err := svc.MarkExit(context.Background(), visitor.ID)
	require.NoError(t, err)
	require.NotNil(t, exited.ExitTime)
	assert.Equal(t, exit, *exited.ExitTime)
}

func TestMarkExitTwiceKeepsFirstExitTime(t *testing.T) {
	entry := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	current := entry
	svc := &visitorServiceImpl{
		visitorRepo: newFakeVisitorStore(),
		now:         func() time.Time { return current },
	}

	visitor, err := svc.CreateVisitor(context.Background(), newVisitorRequest())
	require.NoError(t, err)

	firstExit := entry.Add(30 * time.Minute)
	current = firstExit
	_, err = svc.MarkExit(context.Background(), visitor.ID)
	require.NoError(t, err)

	current = entry.Add(2 * time.Hour)
	_, err = svc.MarkExit(context.Background(), visitor.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExited)

	kept, err := svc.GetVisitorByID(context.Background(), visitor.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.ExitTime)
	assert.Equal(t, firstExit, *kept.ExitTime)
}

func TestMarkExitNotFound(t *testing.T) {
	svc := NewVisitorService(newFakeVisitorStore())

	_, err := svc.MarkExit(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrVisitorNotFound)
}
