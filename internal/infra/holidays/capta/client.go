package capta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
)

const defaultURL = "https://content.capta.co/Recruitment/WorkingDays.json"

// maxPayload bounds the holiday document read from upstream.
const maxPayload = 1 << 20

// Client fetches the published Colombian holiday list.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient builds an API client. A non-positive timeout falls back to 10s.
func NewClient(url string, timeout time.Duration) *Client {
	endpoint := strings.TrimSpace(url)
	if endpoint == "" {
		endpoint = defaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves and decodes the holiday document.
func (c *Client) Fetch(ctx context.Context) ([]calendar.Holiday, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build holidays request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holidays request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("holidays request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("read holidays response: %w", err)
	}
	return holiday.Decode(body)
}

var _ holiday.Source = (*Client)(nil)
