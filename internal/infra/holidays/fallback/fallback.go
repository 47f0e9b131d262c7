// Package fallback ships the known-good holiday list served when no upstream is reachable.
package fallback

import (
	"context"
	_ "embed"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
)

//go:embed holidays.json
var payload []byte

// Load decodes the embedded list.
func Load() (holiday.Fallback, error) {
	items, err := holiday.Decode(payload)
	if err != nil {
		return nil, err
	}
	return holiday.Fallback(items), nil
}

// Source serves the embedded list as a regular holiday source, for offline deployments.
type Source struct {
	items holiday.Fallback
}

// NewSource wraps a fallback list.
func NewSource(items holiday.Fallback) *Source {
	return &Source{items: items}
}

// Fetch returns a copy of the list.
func (s *Source) Fetch(context.Context) ([]calendar.Holiday, error) {
	return append([]calendar.Holiday(nil), s.items...), nil
}

var _ holiday.Source = (*Source)(nil)
