package catalog

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const refreshTimeout = 30 * time.Second

// Refresher reloads a Snapshot on a fixed interval.
type Refresher struct {
	scheduler *gocron.Scheduler
	snapshot  *Snapshot
	interval  time.Duration
	logger    *zap.Logger
}

// NewRefresher returns a refresher. An interval <= 0 disables periodic reloads.
func NewRefresher(snapshot *Snapshot, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		snapshot:  snapshot,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the reload job. The first run happens one interval from now.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		r.logger.Info("catalog refresh disabled")
		return nil
	}

	_, err := r.scheduler.Every(r.interval).WaitForSchedule().SingletonMode().Do(r.run)
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	r.logger.Info("catalog refresh scheduled", zap.Duration("interval", r.interval))
	return nil
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := r.snapshot.Refresh(ctx); err != nil {
		r.logger.Warn("catalog refresh failed, keeping previous stations",
			zap.String("source", r.snapshot.SourceName()),
			zap.Error(err))
	}
}

// Stop cancels future reloads.
func (r *Refresher) Stop() {
	if r.scheduler != nil && r.scheduler.IsRunning() {
		r.scheduler.Stop()
	}
}
