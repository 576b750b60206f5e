package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrphanStore struct {
	orphans []int64
	deleted bool
	err     error
}

func (f *fakeOrphanStore) ListOrphanIDs(_ context.Context) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orphans, nil
}

func (f *fakeOrphanStore) DeleteOrphans(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deleted = true
	removed := int64(len(f.orphans))
	f.orphans = nil
	return removed, nil
}

func newTestSweeper(stores map[string]*fakeOrphanStore) *Sweeper {
	s := &Sweeper{stores: map[string]orphanStore{}}
	for _, name := range []string{"complaints", "visitors", "leaves", "fee_payments"} {
		store, ok := stores[name]
		if !ok {
			store = &fakeOrphanStore{}
		}
		s.stores[name] = store
		s.order = append(s.order, name)
	}
	return s
}

func TestSweeperRunDeletesOrphans(t *testing.T) {
	complaints := &fakeOrphanStore{orphans: []int64{3, 7}}
	leaves := &fakeOrphanStore{orphans: []int64{5}}
	sweeper := newTestSweeper(map[string]*fakeOrphanStore{
		"complaints": complaints,
		"leaves":     leaves,
	})

	report, err := sweeper.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.Complaints)
	assert.Equal(t, int64(1), report.Leaves)
	assert.Equal(t, int64(0), report.Visitors)
	assert.Equal(t, int64(0), report.FeePayments)
	assert.Equal(t, int64(3), report.Total())
	assert.True(t, complaints.deleted)
	assert.True(t, leaves.deleted)
}

func TestSweeperDryRunLeavesRowsInPlace(t *testing.T) {
	complaints := &fakeOrphanStore{orphans: []int64{3, 7}}
	sweeper := newTestSweeper(map[string]*fakeOrphanStore{"complaints": complaints})

	report, err := sweeper.Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.Complaints)
	assert.False(t, complaints.deleted)
	assert.Len(t, complaints.orphans, 2)
}

func TestSweeperRunPropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	sweeper := newTestSweeper(map[string]*fakeOrphanStore{
		"visitors": {err: boom},
	})

	_, err := sweeper.Run(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "visitors")
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	sweeper := newTestSweeper(nil)

	_, err := Schedule(sweeper, "not a cron spec")
	assert.Error(t, err)

	c, err := Schedule(sweeper, "0 3 * * *")
	require.NoError(t, err)
	<-c.Stop().Done()
}
