package backend

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Watcher stands in for the backend's realtime insert-notification feed: it
// polls the activity log for a newer identifier and wakes all waiters when
// one appears. Consumers respond with a full re-fetch, never an incremental
// patch.
type Watcher struct {
	client   *Client
	interval time.Duration

	mu      sync.Mutex
	latest  int64
	changed chan struct{}
}

// NewWatcher creates a watcher polling at the given interval.
func NewWatcher(client *Client, interval time.Duration) *Watcher {
	return &Watcher{
		client:   client,
		interval: interval,
		changed:  make(chan struct{}),
	}
}

// Run polls until the context is cancelled. Poll failures are logged and
// skipped; the next tick tries again.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		id, err := w.client.LatestLogID(ctx)
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("log watcher poll failed", "error", err)
			}
			continue
		}
		w.advance(id)
	}
}

// advance records a newer log id and wakes waiters.
func (w *Watcher) advance(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id <= w.latest {
		return
	}
	w.latest = id
	close(w.changed)
	w.changed = make(chan struct{})
}

// Latest returns the newest log id seen so far.
func (w *Watcher) Latest() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest
}

// Wait blocks until a log id newer than since has been seen or the context
// ends, returning the newest id either way.
func (w *Watcher) Wait(ctx context.Context, since int64) int64 {
	for {
		w.mu.Lock()
		latest := w.latest
		changed := w.changed
		w.mu.Unlock()

		if latest > since {
			return latest
		}

		select {
		case <-ctx.Done():
			return latest
		case <-changed:
		}
	}
}
