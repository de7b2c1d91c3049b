// Package pipeline periodically imports weather advisories as alerts.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/jonboulle/clockwork"
)

// AlertMerger adds alerts a session does not have yet and returns the ones added.
type AlertMerger interface {
	Merge(ctx context.Context, session string, alerts []domain.Alert) ([]domain.Alert, error)
}

// Options configures what the sync loop watches and where it writes.
type Options struct {
	Session  string
	Home     domain.Coordinates
	Location string
	Interval time.Duration
}

// Pipeline orchestrates the fetch-convert-merge loop.
type Pipeline struct {
	source  domain.AdvisorySource
	merger  AlertMerger
	opts    Options
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline. A nil clock uses real time.
func New(source domain.AdvisorySource, merger AlertMerger, opts Options, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.Location == "" {
		opts.Location = defaultLocation
	}
	return &Pipeline{
		source:  source,
		merger:  merger,
		opts:    opts,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once one sync run has succeeded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("advisory sync has not completed a run yet")
	}
	return nil
}

// Run syncs immediately and then once per interval until ctx is cancelled.
// A failed run is logged and counted; the next tick tries again.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("advisory sync started",
		"interval", p.opts.Interval,
		"session", p.opts.Session,
	)
	p.metrics.AdvisorySyncRunning.Set(1)
	defer p.metrics.AdvisorySyncRunning.Set(0)

	ticker := p.clock.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		if _, err := p.RunOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("advisory sync failed", "error", err)
		}

		select {
		case <-ctx.Done():
			p.logger.Info("advisory sync stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

// RunOnce performs a single fetch-convert-merge cycle and returns the
// number of alerts added.
func (p *Pipeline) RunOnce(ctx context.Context) (int, error) {
	start := p.clock.Now()

	raw, err := p.source.FetchAdvisories(ctx, p.opts.Home)
	if err != nil {
		p.metrics.AdvisorySyncRuns.WithLabelValues("error").Inc()
		return 0, err
	}

	added, err := p.merger.Merge(ctx, p.opts.Session, ToAlerts(raw, p.opts.Location))
	if err != nil {
		p.metrics.AdvisorySyncRuns.WithLabelValues("error").Inc()
		return 0, err
	}

	p.metrics.AdvisorySyncRuns.WithLabelValues("success").Inc()
	p.metrics.AdvisoryAlertsAdded.Add(float64(len(added)))
	p.metrics.AdvisorySyncDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)

	if len(added) > 0 {
		p.logger.Info("advisory alerts imported", "added", len(added), "fetched", len(raw))
	}
	return len(added), nil
}
