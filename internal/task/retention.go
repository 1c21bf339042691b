package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/platform/metrics"
	"github.com/robfig/cron/v3"
)

// ReadNotificationPurger deletes read notifications created before a cutoff.
// service.NotificationService satisfies it.
type ReadNotificationPurger interface {
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
}

// RetentionJob periodically deletes read notifications older than the
// retention period.
type RetentionJob struct {
	purger    ReadNotificationPurger
	retention time.Duration
	timeout   time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics

	mu   sync.Mutex
	cron *cron.Cron
}

// NewRetentionJob creates a job that keeps read notifications for
// retentionDays. clock and m may be nil.
func NewRetentionJob(
	purger ReadNotificationPurger,
	retentionDays int,
	clock clockwork.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) (*RetentionJob, error) {
	if purger == nil {
		return nil, errors.New("retention job: purger cannot be nil")
	}
	if retentionDays <= 0 {
		return nil, fmt.Errorf("retention job: retention must be positive, got %d days", retentionDays)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionJob{
		purger:    purger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		timeout:   5 * time.Minute,
		clock:     clock,
		logger:    logger.With("component", "notification_retention"),
		metrics:   m,
	}, nil
}

// Cutoff returns the creation time before which read notifications are purged.
func (j *RetentionJob) Cutoff() time.Time {
	return j.clock.Now().UTC().Add(-j.retention)
}

// Run performs one purge and returns the number of deleted notifications.
func (j *RetentionJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.Cutoff()
	n, err := j.purger.PurgeRead(ctx, cutoff)
	if err != nil {
		j.logger.Error("notification retention failed", "error", err, "cutoff", cutoff)
		return 0, err
	}
	if j.metrics != nil {
		j.metrics.RetentionPurged.Add(float64(n))
	}
	j.logger.Info("notification retention completed", "deleted", n, "cutoff", cutoff)
	return n, nil
}

// Start schedules Run with a standard cron expression or descriptor such as
// "@daily". Overlapping runs are skipped.
func (j *RetentionJob) Start(schedule string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cron != nil {
		return errors.New("retention job already started")
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(j.logger.Handler(), slog.LevelDebug))
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	if _, err := c.AddFunc(schedule, j.runScheduled); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}

	c.Start()
	j.cron = c
	j.logger.Info("notification retention scheduled", "schedule", schedule, "retention", j.retention)
	return nil
}

// Stop unschedules the job. The returned context is done once a run in
// progress has finished.
func (j *RetentionJob) Stop() context.Context {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	ctx := j.cron.Stop()
	j.cron = nil
	return ctx
}

func (j *RetentionJob) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_, _ = j.Run(ctx)
}
