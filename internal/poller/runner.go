// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run polls once immediately, then on every tick, emitting each PollResult on out.
// It returns after Count cycles or when ctx is cancelled, and closes out.
// No overlap. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	defer close(out)

	emit := func() bool {
		if ctx.Err() != nil {
			return false
		}
		res := p.PollOnce()
		select {
		case <-ctx.Done():
			return false
		case out <- res:
			return p.cfg.Count == 0 || p.seq < p.cfg.Count
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
