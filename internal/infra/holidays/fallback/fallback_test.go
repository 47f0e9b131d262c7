package fallback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/workcalc/internal/domain/calendar"
)

func TestLoad(t *testing.T) {
	items, err := Load()
	require.NoError(t, err)
	require.Len(t, items, 36)

	set := calendar.NewHolidaySet(items)
	require.True(t, set.Contains("2025-04-18"))
	require.True(t, set.Contains("2024-12-25"))
	require.False(t, set.Contains("2025-04-16"))
}

func TestSourceReturnsCopy(t *testing.T) {
	items, err := Load()
	require.NoError(t, err)

	src := NewSource(items)
	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	got[0].Name = "changed"

	again, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Año Nuevo", again[0].Name)
}
