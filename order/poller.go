package order

import (
	"context"
	"time"

	"github.com/nalinbhardwaj/connectkit/logger"
)

// DefaultPollInterval matches the confirmation screen's refresh cadence.
const DefaultPollInterval = 300 * time.Millisecond

// Poller runs a refresh function on a fixed interval for as long as the
// confirmation view is active. It does not stop itself when the order
// reaches a terminal phase; the owner stops it on teardown or when Done is
// observed on the snapshot. Refresh faults are logged and swallowed: the
// next tick retries.
type Poller struct {
	interval time.Duration
	refresh  func(ctx context.Context) error
	log      logger.Logger
}

// NewPoller builds a poller around refresh. interval <= 0 means
// DefaultPollInterval; log may be nil.
func NewPoller(interval time.Duration, refresh func(ctx context.Context) error, log logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &Poller{interval: interval, refresh: refresh, log: log}
}

// Start begins polling and returns a stop function. Stopping is idempotent;
// cancelling ctx stops the poller too.
func (p *Poller) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.refresh(ctx); err != nil && ctx.Err() == nil {
					p.log.Warn("order refresh failed", map[string]any{"err": err.Error()})
				}
			}
		}
	}()

	return cancel
}
