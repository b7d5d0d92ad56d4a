package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReportPurger drops the cached reports of a user.
type ReportPurger interface {
	Purge(ctx context.Context, userID string) error
}

const (
	defaultQueueSize = 100
	purgeTimeout     = 3 * time.Second
)

// ReportInvalidator purges a user's cached reports after their habits or
// efforts change. Purges run inline; failed ones are retried in the background.
type ReportInvalidator struct {
	purger ReportPurger
	jobs   chan string
	log    *zap.Logger
	wg     sync.WaitGroup
}

func NewReportInvalidator(purger ReportPurger, log *zap.Logger) *ReportInvalidator {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportInvalidator{
		purger: purger,
		jobs:   make(chan string, defaultQueueSize),
		log:    log.Named("report_worker"),
	}
}

func (w *ReportInvalidator) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.log.Info("report invalidator started")
		for {
			select {
			case userID := <-w.jobs:
				w.process(ctx, userID)
			case <-ctx.Done():
				w.drain()
				w.log.Info("report invalidator shutting down")
				return
			}
		}
	}()
}

// Wait blocks until the worker goroutine has exited.
func (w *ReportInvalidator) Wait() {
	w.wg.Wait()
}

// Invalidate purges userID's reports before returning. The purge outlives a
// cancelled request so a disconnecting client cannot leave stale reports.
func (w *ReportInvalidator) Invalidate(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), purgeTimeout)
	defer cancel()

	if err := w.purger.Purge(ctx, userID); err != nil {
		w.log.Warn("purge failed, queueing retry", zap.String("user_id", userID), zap.Error(err))
		w.Enqueue(userID)
	}
}

// Enqueue schedules a background purge of userID's reports.
func (w *ReportInvalidator) Enqueue(userID string) {
	select {
	case w.jobs <- userID:
	default:
		w.log.Warn("queue full, dropping invalidation", zap.String("user_id", userID))
	}
}

// drain flushes queued jobs with a fresh context once the parent is done.
func (w *ReportInvalidator) drain() {
	for {
		select {
		case userID := <-w.jobs:
			w.process(context.Background(), userID)
		default:
			return
		}
	}
}

func (w *ReportInvalidator) process(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	if err := w.purger.Purge(ctx, userID); err != nil {
		w.log.Error("purge failed", zap.String("user_id", userID), zap.Error(err))
	}
}
