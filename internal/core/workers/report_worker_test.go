package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePurger struct {
	mu     sync.Mutex
	purged []string
	err    error
}

func (f *fakePurger) Purge(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purged = append(f.purged, userID)
	return f.err
}

func (f *fakePurger) Purged() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.purged...)
}

func TestReportInvalidator_PurgesEnqueuedUsers(t *testing.T) {
	purger := &fakePurger{}
	w := NewReportInvalidator(purger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	w.Enqueue("u1")
	w.Enqueue("u2")

	assert.Eventually(t, func() bool {
		return len(purger.Purged()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()
	assert.Equal(t, []string{"u1", "u2"}, purger.Purged())
}

func TestReportInvalidator_DrainsOnShutdown(t *testing.T) {
	purger := &fakePurger{}
	w := NewReportInvalidator(purger, nil)

	for i := 0; i < 5; i++ {
		w.Enqueue("u1")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
	w.Wait()

	assert.Len(t, purger.Purged(), 5)
}

func TestReportInvalidator_QueueFullDropsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := NewReportInvalidator(&fakePurger{}, zap.New(core))

	for i := 0; i < defaultQueueSize+3; i++ {
		w.Enqueue("u1")
	}

	assert.Equal(t, 3, logs.FilterMessage("queue full, dropping invalidation").Len())
}

func TestReportInvalidator_PurgeErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	purger := &fakePurger{err: errors.New("redis down")}
	w := NewReportInvalidator(purger, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	w.Enqueue("u1")

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("purge failed").Len() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()
}

func TestReportInvalidator_InvalidatePurgesInline(t *testing.T) {
	purger := &fakePurger{}
	w := NewReportInvalidator(purger, nil)

	// No worker is running: the purge must happen in the caller.
	w.Invalidate(context.Background(), "u1")

	assert.Equal(t, []string{"u1"}, purger.Purged())
	assert.Empty(t, w.jobs)
}

func TestReportInvalidator_InvalidateIgnoresCancelledRequest(t *testing.T) {
	purger := &ctxPurger{}
	w := NewReportInvalidator(purger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Invalidate(ctx, "u1")

	assert.NoError(t, purger.seen)
	assert.Empty(t, w.jobs)
}

func TestReportInvalidator_FailedInvalidateIsRetried(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	purger := &flakyPurger{failures: 1}
	w := NewReportInvalidator(purger, zap.New(core))

	w.Invalidate(context.Background(), "u1")
	assert.Equal(t, 1, logs.FilterMessage("purge failed, queueing retry").Len())
	assert.Len(t, w.jobs, 1)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool {
		return purger.Calls() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()
}

// ctxPurger records the context error seen at purge time.
type ctxPurger struct {
	seen error
}

func (p *ctxPurger) Purge(ctx context.Context, userID string) error {
	p.seen = ctx.Err()
	return nil
}

// flakyPurger fails its first failures calls.
type flakyPurger struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (p *flakyPurger) Purge(ctx context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.failures {
		return errors.New("redis down")
	}
	return nil
}

func (p *flakyPurger) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
