package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yanqian/workcalc/internal/domain/calendar"
)

// CatalogRefresher is the part of the holiday service the scheduler drives.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// Refresher re-fetches the holiday catalog on a cron schedule evaluated in the calendar zone.
type Refresher struct {
	spec    string
	timeout time.Duration
	catalog CatalogRefresher
	logger  *slog.Logger
	cron    *cron.Cron
}

// NewRefresher validates the schedule. An empty spec yields a disabled refresher.
func NewRefresher(spec string, timeout time.Duration, catalog CatalogRefresher, logger *slog.Logger) (*Refresher, error) {
	spec = strings.TrimSpace(spec)
	if spec != "" {
		if _, err := cron.ParseStandard(spec); err != nil {
			return nil, err
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Refresher{
		spec:    spec,
		timeout: timeout,
		catalog: catalog,
		logger:  logger.With("component", "holiday.refresher"),
	}, nil
}

// Start schedules the refresh job. It is a no-op when disabled.
func (r *Refresher) Start() error {
	if r.spec == "" {
		r.logger.Info("holiday refresh disabled")
		return nil
	}
	r.cron = cron.New(cron.WithLocation(calendar.Zone))
	if _, err := r.cron.AddFunc(r.spec, r.runOnce); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("holiday refresh scheduled", "cron", r.spec)
	return nil
}

// Stop waits for a running refresh to finish or ctx to expire.
func (r *Refresher) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *Refresher) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	start := time.Now()
	if err := r.catalog.Refresh(ctx); err != nil {
		r.logger.Warn("holiday refresh failed", "error", err)
		return
	}
	r.logger.Info("holiday catalog refreshed", "latency_ms", time.Since(start).Milliseconds())
}
