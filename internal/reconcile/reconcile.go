package reconcile

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/hostelease/hostelease/internal/app/repositories"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// orphanStore is the slice of a repository the sweep needs: finding and
// removing rows whose student no longer exists.
type orphanStore interface {
	ListOrphanIDs(ctx context.Context) ([]int64, error)
	DeleteOrphans(ctx context.Context) (int64, error)
}

// Report summarizes one sweep: orphaned rows removed per entity.
type Report struct {
	Complaints  int64 `json:"complaints"`
	Visitors    int64 `json:"visitors"`
	Leaves      int64 `json:"leaves"`
	FeePayments int64 `json:"feePayments"`
}

// Total returns the number of rows the sweep removed across all entities.
func (r Report) Total() int64 {
	return r.Complaints + r.Visitors + r.Leaves + r.FeePayments
}

// Sweeper removes records left behind when a user row is deleted. Student
// references are soft on purpose, so the sweep is what keeps them honest.
type Sweeper struct {
	stores map[string]orphanStore
	order  []string
}

// NewSweeper builds a sweeper over the student-linked repositories.
func NewSweeper(repos *repositories.Repositories) *Sweeper {
	return &Sweeper{
		stores: map[string]orphanStore{
			"complaints":   repos.Complaints,
			"visitors":     repos.Visitors,
			"leaves":       repos.Leaves,
			"fee_payments": repos.FeePayments,
		},
		order: []string{"complaints", "visitors", "leaves", "fee_payments"},
	}
}

// Run deletes orphaned rows in every student-linked table and returns the
// per-entity counts. If dryRun is set, orphans are only counted and logged.
func (s *Sweeper) Run(ctx context.Context, dryRun bool) (*Report, error) {
	report := &Report{}

	for _, name := range s.order {
		store := s.stores[name]

		var removed int64
		if dryRun {
			ids, err := store.ListOrphanIDs(ctx)
			if err != nil {
				return nil, fmt.Errorf("orphan sweep failed for %s: %w", name, err)
			}
			removed = int64(len(ids))
			if removed > 0 {
				logger.Info().Str("entity", name).Ints64("ids", ids).Msg("Orphaned rows found (dry run)")
			}
		} else {
			var err error
			removed, err = store.DeleteOrphans(ctx)
			if err != nil {
				return nil, fmt.Errorf("orphan sweep failed for %s: %w", name, err)
			}
		}

		switch name {
		case "complaints":
			report.Complaints = removed
		case "visitors":
			report.Visitors = removed
		case "leaves":
			report.Leaves = removed
		case "fee_payments":
			report.FeePayments = removed
		}
	}

	logger.Info().
		Int64("complaints", report.Complaints).
		Int64("visitors", report.Visitors).
		Int64("leaves", report.Leaves).
		Int64("feePayments", report.FeePayments).
		Bool("dryRun", dryRun).
		Msg("Orphan reconciliation sweep completed")

	return report, nil
}

// Schedule registers the sweep on a cron schedule and starts the scheduler.
// The returned cron must be stopped on shutdown.
func Schedule(sweeper *Sweeper, spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		if _, err := sweeper.Run(ctx, false); err != nil {
			logger.Error().Err(err).Msg("Scheduled orphan sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", spec, err)
	}

	c.Start()
	logger.Info().Str("schedule", spec).Msg("Orphan reconciliation scheduled")
	return c, nil
}
