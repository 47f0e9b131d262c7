package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Holiday source kinds.
const (
	SourceRemote      = "remote"
	SourcePostgres    = "postgres"
	SourceObjectStore = "objectStore"
	SourceFallback    = "fallback"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Calendar CalendarConfig `yaml:"calendar"`
	Holidays HolidaysConfig `yaml:"holidays"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CalendarConfig is the weekly/daily work template. Weekdays use 0=Sunday..6=Saturday.
type CalendarConfig struct {
	WorkDays       []int `yaml:"workDays"`
	StartHour      int   `yaml:"startHour"`
	EndHour        int   `yaml:"endHour"`
	LunchStartHour int   `yaml:"lunchStartHour"`
	LunchEndHour   int   `yaml:"lunchEndHour"`
	MaxSkipDays    int   `yaml:"maxSkipDays"`
}

// HolidaysConfig selects where the holiday catalog comes from and how long it is cached.
type HolidaysConfig struct {
	Source       string            `yaml:"source"`
	URL          string            `yaml:"url"`
	FetchTimeout time.Duration     `yaml:"fetchTimeout"`
	CacheTTL     time.Duration     `yaml:"cacheTtl"`
	FallbackTTL  time.Duration     `yaml:"fallbackTtl"`
	RefreshCron  string            `yaml:"refreshCron"`
	Redis        RedisConfig       `yaml:"redis"`
	Postgres     PostgresConfig    `yaml:"postgres"`
	ObjectStore  ObjectStoreConfig `yaml:"objectStore"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ObjectStoreConfig points at a JSON holiday document in an S3 compatible bucket.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("CALENDAR_WORK_DAYS"); v != "" {
		if days, err := parseWeekdays(v); err == nil {
			cfg.Calendar.WorkDays = days
		}
	}
	if v := os.Getenv("CALENDAR_MAX_SKIP_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.MaxSkipDays = parsed
		}
	}
	if v := os.Getenv("HOLIDAYS_SOURCE"); v != "" {
		cfg.Holidays.Source = v
	}
	if v := os.Getenv("HOLIDAYS_URL"); v != "" {
		cfg.Holidays.URL = v
	}
	if v := os.Getenv("HOLIDAYS_FETCH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Holidays.FetchTimeout = parsed
		}
	}
	if v := os.Getenv("HOLIDAYS_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Holidays.CacheTTL = parsed
		}
	}
	if v := os.Getenv("HOLIDAYS_FALLBACK_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Holidays.FallbackTTL = parsed
		}
	}
	if v, ok := os.LookupEnv("HOLIDAYS_REFRESH_CRON"); ok {
		cfg.Holidays.RefreshCron = v
	}
	if v := os.Getenv("HOLIDAYS_REDIS_ENABLED"); v != "" {
		cfg.Holidays.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("HOLIDAYS_REDIS_ADDR"); v != "" {
		cfg.Holidays.Redis.Addr = v
	}
	if v := os.Getenv("HOLIDAYS_POSTGRES_DSN"); v != "" {
		cfg.Holidays.Postgres.DSN = v
	}
	if v := os.Getenv("HOLIDAYS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Holidays.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("HOLIDAYS_S3_ENDPOINT"); v != "" {
		cfg.Holidays.ObjectStore.Endpoint = v
	}
	if v := os.Getenv("HOLIDAYS_S3_ACCESS_KEY"); v != "" {
		cfg.Holidays.ObjectStore.AccessKey = v
	}
	if v := os.Getenv("HOLIDAYS_S3_SECRET_KEY"); v != "" {
		cfg.Holidays.ObjectStore.SecretKey = v
	}
	if v := os.Getenv("HOLIDAYS_S3_BUCKET"); v != "" {
		cfg.Holidays.ObjectStore.Bucket = v
	}
	if v := os.Getenv("HOLIDAYS_S3_REGION"); v != "" {
		cfg.Holidays.ObjectStore.Region = v
	}
	if v := os.Getenv("HOLIDAYS_S3_KEY"); v != "" {
		cfg.Holidays.ObjectStore.Key = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 100 * time.Millisecond,
				Exclude: []string{
					"/healthz",
				},
			},
		},
		Calendar: CalendarConfig{
			WorkDays:       []int{1, 2, 3, 4, 5},
			StartHour:      8,
			EndHour:        17,
			LunchStartHour: 12,
			LunchEndHour:   13,
			MaxSkipDays:    366,
		},
		Holidays: HolidaysConfig{
			Source:       SourceRemote,
			URL:          "https://content.capta.co/Recruitment/WorkingDays.json",
			FetchTimeout: 5 * time.Second,
			CacheTTL:     24 * time.Hour,
			FallbackTTL:  15 * time.Minute,
			RefreshCron:  "0 */6 * * *",
			Redis: RedisConfig{
				Prefix: "workcalc",
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			ObjectStore: ObjectStoreConfig{
				Key: "holidays.json",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	for _, d := range c.Calendar.WorkDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("calendar.workDays contains invalid weekday %d", d)
		}
	}
	if c.Holidays.CacheTTL < 0 || c.Holidays.FallbackTTL < 0 {
		return errors.New("holidays ttl values cannot be negative")
	}
	switch c.Holidays.Source {
	case SourceRemote:
		if strings.TrimSpace(c.Holidays.URL) == "" {
			return errors.New("holidays.url cannot be empty when source is remote")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.Holidays.Postgres.DSN) == "" {
			return errors.New("holidays.postgres.dsn cannot be empty when source is postgres")
		}
	case SourceObjectStore:
		if strings.TrimSpace(c.Holidays.ObjectStore.Endpoint) == "" || strings.TrimSpace(c.Holidays.ObjectStore.Bucket) == "" {
			return errors.New("holidays.objectStore endpoint and bucket are required when source is objectStore")
		}
	case SourceFallback:
	default:
		return fmt.Errorf("holidays.source %q is not supported", c.Holidays.Source)
	}
	if c.Holidays.Redis.Enabled && strings.TrimSpace(c.Holidays.Redis.Addr) == "" {
		return errors.New("holidays.redis.addr cannot be empty when redis cache is enabled")
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseWeekdays(v string) ([]int, error) {
	parts := splitList(v)
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
