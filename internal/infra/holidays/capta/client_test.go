package capta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/workcalc/internal/domain/calendar"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date":"2025-01-01","name":"Año Nuevo"},{"date":"2025-01-06","name":"Día de los Reyes Magos"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	items, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, []calendar.Holiday{
		{Date: "2025-01-01", Name: "Año Nuevo"},
		{Date: "2025-01-06", Name: "Día de los Reyes Magos"},
	}, items)
}

func TestFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=503")
}

func TestFetchInvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"holidays":[]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Fetch(context.Background())
	require.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("  ", 0)
	require.Equal(t, defaultURL, client.url)
	require.Equal(t, 10*time.Second, client.httpClient.Timeout)
}
