package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Scheduler runs the refresher on a fixed interval.
type Scheduler struct {
	gocron gocron.Scheduler
	logger *zap.Logger
}

// NewScheduler creates a scheduler that triggers refresher every interval.
// The refresher's own guard makes overlapping triggers skip, not queue.
func NewScheduler(refresher *Refresher, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("couldn't create scheduler: %w", err)
	}

	_, err = gs.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := refresher.Run(context.Background()); err != nil {
				if errors.Is(err, ErrAlreadyRunning) {
					logger.Warn("Skipping scheduled refresh, previous run still in progress")
					return
				}
				logger.Error("Scheduled refresh failed", zap.Error(err))
			}
		}),
		gocron.WithName("catalog-refresh"),
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't create refresh job: %w", err)
	}

	return &Scheduler{gocron: gs, logger: logger}, nil
}

// Start begins the schedule. The first run happens after one full interval.
func (s *Scheduler) Start() {
	s.logger.Info("Starting refresh scheduler")
	s.gocron.Start()
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping refresh scheduler")
	return s.gocron.Shutdown()
}
