package holiday

import (
	"context"
	"time"

	"github.com/yanqian/workcalc/internal/domain/calendar"
)

// Source retrieves the authoritative holiday list from an upstream system.
type Source interface {
	Fetch(ctx context.Context) ([]calendar.Holiday, error)
}

// Store caches the last retrieved holiday list.
type Store interface {
	Load(ctx context.Context) ([]calendar.Holiday, bool, error)
	Save(ctx context.Context, items []calendar.Holiday, ttl time.Duration) error
}

// Fallback is the known-good list served when the source is unavailable.
type Fallback []calendar.Holiday
