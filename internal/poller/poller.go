// Package poller drives the resolution engine at a fixed interval.
package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/duelboard/pkg/logger"
)

const defaultInterval = 30 * time.Second

// Engine is the per-cycle work the poller schedules.
type Engine interface {
	ProcessCycle(ctx context.Context)
}

// Poller runs one cycle immediately, then one per interval. Cycles never
// overlap: the next tick is only consumed after the previous cycle returns.
type Poller struct {
	engine   Engine
	interval time.Duration
	logger   logger.Logger

	shutdown chan struct{}
	done     chan struct{}
}

// New creates a poller for the given engine and interval. Non-positive
// intervals fall back to the default.
func New(engine Engine, interval time.Duration, opts ...Option) *Poller {
	p := &Poller{
		engine:   engine,
		interval: interval,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	if p.interval <= 0 {
		p.interval = defaultInterval
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("poller")
	}
	return p
}

// Run executes cycles until ctx is canceled or Shutdown is called.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info(ctx, "polling started", logger.String("interval", p.interval.String()))
	p.engine.ProcessCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.engine.ProcessCycle(ctx)
		}
	}
}

// Shutdown stops the loop and waits for any in-flight cycle to finish.
// Call at most once.
func (p *Poller) Shutdown(ctx context.Context) error {
	close(p.shutdown)
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "poller shutdown timed out")
		return fmt.Errorf("poller shutdown timed out: %w", ctx.Err())
	}
}
