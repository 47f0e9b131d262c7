package holiday

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	apperrors "github.com/yanqian/workcalc/pkg/errors"
)

// CodeUpstreamFailure marks a catalog that could not be served at all.
const CodeUpstreamFailure = "upstream_failure"

// Service exposes the holiday catalog to calculations and listings.
type Service interface {
	// Holidays returns the current catalog as a lookup set.
	Holidays(ctx context.Context) (calendar.HolidaySet, error)
	// List returns the current catalog sorted by date.
	List(ctx context.Context) ([]calendar.Holiday, error)
	// Refresh bypasses the cache and re-fetches from the source.
	Refresh(ctx context.Context) error
}

type service struct {
	cfg      Config
	source   Source
	store    Store
	fallback Fallback
	logger   *slog.Logger
	group    singleflight.Group
}

// NewService wires the catalog with its source, cache store and fallback list.
func NewService(cfg Config, source Source, store Store, fallback Fallback, logger *slog.Logger) Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.FallbackTTL <= 0 {
		cfg.FallbackTTL = 15 * time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	return &service{
		cfg:      cfg,
		source:   source,
		store:    store,
		fallback: fallback,
		logger:   logger.With("component", "holiday.service"),
	}
}

func (s *service) Holidays(ctx context.Context) (calendar.HolidaySet, error) {
	items, err := s.current(ctx)
	if err != nil {
		return calendar.HolidaySet{}, err
	}
	return calendar.NewHolidaySet(items), nil
}

func (s *service) List(ctx context.Context) ([]calendar.Holiday, error) {
	items, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]calendar.Holiday(nil), items...)
	calendar.SortHolidays(out)
	return out, nil
}

func (s *service) Refresh(ctx context.Context) error {
	_, err := s.reload(ctx)
	return err
}

func (s *service) current(ctx context.Context) ([]calendar.Holiday, error) {
	items, ok, err := s.store.Load(ctx)
	switch {
	case err != nil:
		s.logger.Warn("holiday cache read failed", "error", err)
	case ok:
		return items, nil
	}
	return s.reload(ctx)
}

// reload collapses concurrent refreshes into a single upstream fetch. The shared fetch is
// detached from the first caller's cancellation and bounded by FetchTimeout instead.
func (s *service) reload(ctx context.Context) ([]calendar.Holiday, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("holidays", func() (any, error) {
		return s.fetch(shared)
	})
	if err != nil {
		return nil, err
	}
	return v.([]calendar.Holiday), nil
}

func (s *service) fetch(ctx context.Context) ([]calendar.Holiday, error) {
	fetchCtx := ctx
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	ttl := s.cfg.CacheTTL
	items, err := s.source.Fetch(fetchCtx)
	if err == nil && len(items) == 0 {
		err = ErrEmptyCatalog
	}
	if err != nil {
		if len(s.fallback) == 0 {
			return nil, apperrors.Wrap(CodeUpstreamFailure, "holiday catalog unavailable", err)
		}
		s.logger.Warn("holiday source unavailable, using fallback list", "error", err, "fallback_size", len(s.fallback))
		items = append([]calendar.Holiday(nil), s.fallback...)
		ttl = s.cfg.FallbackTTL
	} else {
		s.logger.Info("holiday catalog refreshed", "size", len(items))
	}

	if err := s.store.Save(ctx, items, ttl); err != nil {
		s.logger.Warn("holiday cache write failed", "error", err)
	}
	return items, nil
}
