package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"sphere-ca/internal/core"
	"sphere-ca/internal/world"
)

// Loop drives a world on a fixed frame interval and publishes a snapshot
// after every engine tick. Only Run touches the world.
type Loop struct {
	world  *world.World
	hub    *Hub
	frame  time.Duration
	log    core.Logger
	latest atomic.Pointer[world.Snapshot]
}

// NewLoop wires a world to a hub. A nil hub only keeps the latest snapshot.
func NewLoop(w *world.World, hub *Hub, frame time.Duration, log core.Logger) *Loop {
	if log == nil {
		log = core.NoOpLogger{}
	}
	if frame <= 0 {
		frame = time.Second / 60
	}
	l := &Loop{world: w, hub: hub, frame: frame, log: log}
	l.store()
	return l
}

// Run advances the world until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.step(ctx)
		}
	}
}

func (l *Loop) step(ctx context.Context) {
	if !l.world.Update(l.frame) {
		return
	}
	snap := l.store()
	if l.hub == nil {
		return
	}
	if err := l.hub.Publish(ctx, snap); err != nil && !errors.Is(err, context.Canceled) {
		l.log.Warnf("stream: publish tick %d: %v", snap.Tick, err)
	}
}

func (l *Loop) store() world.Snapshot {
	snap := l.world.Snapshot()
	l.latest.Store(&snap)
	return snap
}

// Latest returns the most recently published snapshot.
func (l *Loop) Latest() world.Snapshot {
	return *l.latest.Load()
}

// ServeSnapshot writes the latest snapshot as JSON.
func (l *Loop) ServeSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(l.Latest()); err != nil {
		l.log.Warnf("stream: encode snapshot: %v", err)
	}
}
