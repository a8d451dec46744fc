package backend

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/loan-engine/internal/metrics"
)

// Prober periodically health-checks the external rule backend and feeds
// the rule_backend_up gauge. It observes only: per-call fallback remains
// the selector's job and the process-level mode never changes after
// initialization.
type Prober struct {
	external *External
	interval time.Duration
}

// NewProber creates a health probe worker for the external backend
func NewProber(external *External, interval time.Duration) *Prober {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Prober{
		external: external,
		interval: interval,
	}
}

// Start begins probing in a goroutine until ctx is cancelled
func (p *Prober) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Prober) run(ctx context.Context) {
	slog.Info("backend health probe started", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.probe(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("backend health probe stopped")
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *Prober) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	if err := p.external.HealthCheck(probeCtx); err != nil {
		slog.Warn("external rule backend health probe failed", "error", err)
		metrics.BackendUp.Set(0)
		return
	}

	metrics.BackendUp.Set(1)
}
