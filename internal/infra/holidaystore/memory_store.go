package holidaystore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
)

// MemoryStore keeps the catalog in process memory with an expiry.
type MemoryStore struct {
	mu        sync.RWMutex
	items     []calendar.Holiday
	expiresAt time.Time
	saved     bool
	now       func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Load implements holiday.Store.
func (s *MemoryStore) Load(context.Context) ([]calendar.Holiday, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved || s.hasExpired() {
		return nil, false, nil
	}
	return append([]calendar.Holiday(nil), s.items...), true, nil
}

// Save replaces the cached catalog. A non-positive ttl never expires.
func (s *MemoryStore) Save(_ context.Context, items []calendar.Holiday, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]calendar.Holiday(nil), items...)
	s.saved = true
	s.expiresAt = time.Time{}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return nil
}

func (s *MemoryStore) hasExpired() bool {
	if s.expiresAt.IsZero() {
		return false
	}
	return !s.now().Before(s.expiresAt)
}

var _ holiday.Store = (*MemoryStore)(nil)
