package cron

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops expired confirmations.
type Sweeper interface {
	Sweep(ctx context.Context) error
	PendingCount() int
}

type ActionJobs struct {
	sweeper  Sweeper
	interval time.Duration
}

func NewActionJobs(sweeper Sweeper, interval time.Duration) *ActionJobs {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ActionJobs{sweeper: sweeper, interval: interval}
}

func (j *ActionJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("sweep_expired_confirmations", j.interval, j.SweepExpiredConfirmations)
}

func (j *ActionJobs) SweepExpiredConfirmations(ctx context.Context) error {
	before := j.sweeper.PendingCount()
	if before == 0 {
		return nil
	}
	if err := j.sweeper.Sweep(ctx); err != nil {
		return err
	}
	slog.Debug("Cron: confirmations swept", "before", before, "after", j.sweeper.PendingCount())
	return nil
}

// Purger removes files under dir last modified before cutoff.
type Purger interface {
	Purge(ctx context.Context, dir string, cutoff time.Time) (int, error)
}

// ExportJobs deletes generated spreadsheets once they are older than
// retention.
type ExportJobs struct {
	purger    Purger
	dir       string
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewExportJobs(purger Purger, dir string, retention, interval time.Duration) *ExportJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExportJobs{
		purger:    purger,
		dir:       dir,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

func (j *ExportJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("purge_old_exports", j.interval, j.PurgeOldExports)
}

func (j *ExportJobs) PurgeOldExports(ctx context.Context) error {
	removed, err := j.purger.Purge(ctx, j.dir, j.now().Add(-j.retention))
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("Cron: old exports purged", "dir", j.dir, "removed", removed)
	}
	return nil
}
