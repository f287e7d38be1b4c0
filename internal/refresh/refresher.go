// Package refresh implements the periodic catalog maintenance job: it flushes
// the result cache and pre-warms the first catalog pages so the next user
// request is served without an upstream round trip.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mollywood/stremio-catalog/internal/cache"
	"github.com/mollywood/stremio-catalog/internal/catalog"
)

// ErrAlreadyRunning is returned when a refresh is triggered while a previous
// run is still in progress. Runs are skipped, not queued.
var ErrAlreadyRunning = errors.New("refresh already running")

// Summary reports the outcome of one refresh run.
type Summary struct {
	Success         bool      `json:"success"`
	Timestamp       time.Time `json:"timestamp"`
	MoviesRefreshed int       `json:"moviesRefreshed"`
	Errors          []string  `json:"errors,omitempty"`
}

// Warmer is the slice of the catalog service the refresher needs.
type Warmer interface {
	Catalog(ctx context.Context, page int, genre string) (*catalog.Page, error)
}

// Refresher clears the cache and re-warms the first N catalog pages.
type Refresher struct {
	service Warmer
	cache   *cache.Cache
	pages   int
	pacing  time.Duration
	logger  *zap.Logger
	running atomic.Bool
}

// New creates a refresher warming the first pages catalog pages per run.
func New(service Warmer, c *cache.Cache, pages int, pacing time.Duration, logger *zap.Logger) *Refresher {
	if pages < 1 {
		pages = 1
	}
	return &Refresher{
		service: service,
		cache:   c,
		pages:   pages,
		pacing:  pacing,
		logger:  logger,
	}
}

// Running reports whether a refresh run is currently in progress.
func (r *Refresher) Running() bool {
	return r.running.Load()
}

// Run executes one refresh. Concurrent calls are rejected with ErrAlreadyRunning.
func (r *Refresher) Run(ctx context.Context) (*Summary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer r.running.Store(false)

	start := time.Now()
	r.logger.Info("Starting catalog refresh", zap.Int("pages", r.pages))

	r.cache.Clear()

	summary := &Summary{Timestamp: start.UTC()}
	for page := 1; page <= r.pages; page++ {
		result, err := r.service.Catalog(ctx, page, "")
		if err != nil {
			msg := fmt.Sprintf("page %d: %v", page, err)
			summary.Errors = append(summary.Errors, msg)
			r.logger.Warn("Refresh page failed", zap.Int("page", page), zap.Error(err))
			continue
		}
		summary.MoviesRefreshed += len(result.Movies)
		if page == result.TotalPages {
			break
		}
		if r.pacing > 0 && page < r.pages {
			timer := time.NewTimer(r.pacing)
			select {
			case <-ctx.Done():
				timer.Stop()
				summary.Errors = append(summary.Errors, ctx.Err().Error())
				return summary, nil
			case <-timer.C:
			}
		}
	}

	summary.Success = len(summary.Errors) == 0
	r.logger.Info("Catalog refresh finished",
		zap.Bool("success", summary.Success),
		zap.Int("moviesRefreshed", summary.MoviesRefreshed),
		zap.Int("errors", len(summary.Errors)),
		zap.Duration("duration", time.Since(start)))
	return summary, nil
}
