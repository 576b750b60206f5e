// One-shot orphan reconciliation sweep. Useful for running the cleanup
// out of band instead of waiting for the in-server cron schedule.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hostelease/hostelease/internal/app/repositories"
	"github.com/hostelease/hostelease/internal/bootstrap"
	"github.com/hostelease/hostelease/internal/db"
	"github.com/hostelease/hostelease/internal/pkg/logger"
	"github.com/hostelease/hostelease/internal/reconcile"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report orphaned rows without deleting them")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall sweep timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := db.NewPgxPool(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer dbPool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sweeper := reconcile.NewSweeper(repositories.NewRepositories(dbPool))
	report, err := sweeper.Run(ctx, *dryRun)
	if err != nil {
		logger.Error().Err(err).Msg("Orphan sweep failed")
		os.Exit(1)
	}

	logger.Info().Int64("total", report.Total()).Bool("dryRun", *dryRun).Msg("Sweep finished")
}
