package holidaystore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
)

// ValkeyStore shares the cached catalog between replicas through a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "workcalc"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Load implements holiday.Store.
func (s *ValkeyStore) Load(ctx context.Context) ([]calendar.Holiday, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key()).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var items []calendar.Holiday
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, false, fmt.Errorf("decode cached holidays: %w", err)
	}
	return items, true, nil
}

// Save implements holiday.Store.
func (s *ValkeyStore) Save(ctx context.Context, items []calendar.Holiday, ttl time.Duration) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key()).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key() string {
	return fmt.Sprintf("%s:holidays", s.prefix)
}

var _ holiday.Store = (*ValkeyStore)(nil)
