package holiday

import "time"

// Config holds refresh policy knobs for the catalog.
type Config struct {
	CacheTTL     time.Duration
	FallbackTTL  time.Duration
	FetchTimeout time.Duration
}
