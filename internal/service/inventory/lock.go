package inventory

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/metrics"
)

// writeWeight is the full capacity of the lock. A writer takes all of it,
// a reader takes one unit, so readers share and writers are exclusive.
const writeWeight int64 = 1 << 16

// ledgerLock is a readers/writer lock with a bounded wait.
// Waiters are served in FIFO order so a queued writer is not starved by readers.
type ledgerLock struct {
	sem     *semaphore.Weighted
	timeout time.Duration
	metrics *metrics.Metrics
}

func newLedgerLock(timeout time.Duration, m *metrics.Metrics) *ledgerLock {
	return &ledgerLock{
		sem:     semaphore.NewWeighted(writeWeight),
		timeout: timeout,
		metrics: m,
	}
}

func (l *ledgerLock) read(ctx context.Context) (func(), error) {
	return l.acquire(ctx, 1)
}

func (l *ledgerLock) write(ctx context.Context) (func(), error) {
	return l.acquire(ctx, writeWeight)
}

func (l *ledgerLock) acquire(ctx context.Context, weight int64) (func(), error) {
	start := time.Now()

	waitCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	if err := l.sem.Acquire(waitCtx, weight); err != nil {
		return nil, apperr.Busy(err)
	}
	l.metrics.ObserveLockWait(time.Since(start))

	return func() { l.sem.Release(weight) }, nil
}
