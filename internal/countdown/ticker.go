package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/event-timekeeper/backend/internal/websocket"
)

// Ticker broadcasts a display snapshot every second. Restart cancels any
// running loop before starting a new one, so at most one tick loop is ever
// live regardless of how often settings change.
type Ticker struct {
	presenter   *Presenter
	broadcaster *websocket.EventBroadcaster

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewTicker creates a ticker over the given presenter and broadcaster.
func NewTicker(presenter *Presenter, broadcaster *websocket.EventBroadcaster) *Ticker {
	return &Ticker{
		presenter:   presenter,
		broadcaster: broadcaster,
	}
}

// Restart stops the current tick loop, if any, and starts a fresh one.
func (t *Ticker) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	go t.run(ctx)
}

// Stop cancels the tick loop.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Ticker) run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			snapshot := t.presenter.Snapshot(ctx, now)
			t.broadcaster.BroadcastCountdownTick(snapshot)
		}
	}
}
