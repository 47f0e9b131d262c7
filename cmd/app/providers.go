package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/workcalc/internal/bootstrap"
	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
	"github.com/yanqian/workcalc/internal/domain/workingtime"
	"github.com/yanqian/workcalc/internal/infra/config"
	"github.com/yanqian/workcalc/internal/infra/holidays/capta"
	"github.com/yanqian/workcalc/internal/infra/holidays/fallback"
	"github.com/yanqian/workcalc/internal/infra/holidays/pgsource"
	"github.com/yanqian/workcalc/internal/infra/holidays/s3source"
	"github.com/yanqian/workcalc/internal/infra/holidaystore"
)

func provideCalendarConfig(cfg *config.Config) calendar.Config {
	days := make([]time.Weekday, 0, len(cfg.Calendar.WorkDays))
	for _, d := range cfg.Calendar.WorkDays {
		days = append(days, time.Weekday(d))
	}
	return calendar.Config{
		WorkDays:       days,
		StartHour:      cfg.Calendar.StartHour,
		EndHour:        cfg.Calendar.EndHour,
		LunchStartHour: cfg.Calendar.LunchStartHour,
		LunchEndHour:   cfg.Calendar.LunchEndHour,
		MaxSkipDays:    cfg.Calendar.MaxSkipDays,
	}
}

func provideHolidayConfig(cfg *config.Config) holiday.Config {
	return holiday.Config{
		CacheTTL:     cfg.Holidays.CacheTTL,
		FallbackTTL:  cfg.Holidays.FallbackTTL,
		FetchTimeout: cfg.Holidays.FetchTimeout,
	}
}

func provideFallbackHolidays() (holiday.Fallback, error) {
	return fallback.Load()
}

func provideHolidaySource(cfg *config.Config, fb holiday.Fallback, logger *slog.Logger) holiday.Source {
	switch cfg.Holidays.Source {
	case config.SourcePostgres:
		if source := providePostgresSource(cfg, logger); source != nil {
			return source
		}
	case config.SourceObjectStore:
		store := cfg.Holidays.ObjectStore
		source, err := s3source.NewSource(store.Endpoint, store.AccessKey, store.SecretKey, store.Bucket, store.Region, store.Key, logger)
		if err == nil {
			logger.Info("holiday object store source enabled", "bucket", store.Bucket, "key", store.Key)
			return source
		}
		logger.Error("failed to initialize object store source, using remote source", "error", err)
	case config.SourceFallback:
		logger.Info("holiday source pinned to embedded fallback list")
		return fallback.NewSource(fb)
	}
	logger.Info("holiday remote source enabled", "url", cfg.Holidays.URL)
	return capta.NewClient(cfg.Holidays.URL, cfg.Holidays.FetchTimeout)
}

func providePostgresSource(cfg *config.Config, logger *slog.Logger) holiday.Source {
	dsn := strings.TrimSpace(cfg.Holidays.Postgres.DSN)
	if dsn == "" {
		logger.Info("holiday postgres dsn not set, using remote source")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using remote source", "error", err)
		return nil
	}
	if cfg.Holidays.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Holidays.Postgres.MaxConns
	}
	if cfg.Holidays.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Holidays.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using remote source", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using remote source", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("holiday postgres source enabled")
	return pgsource.NewSource(pool)
}

func provideHolidayStore(cfg *config.Config, logger *slog.Logger) holiday.Store {
	if cfg.Holidays.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return holidaystore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return holidaystore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("holiday valkey store enabled", "addr", cfg.Holidays.Redis.Addr)
			return holidaystore.NewValkeyStore(client, cfg.Holidays.Redis.Prefix)
		}
	}
	return holidaystore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	addr := strings.TrimSpace(cfg.Holidays.Redis.Addr)
	if addr == "" {
		return valkey.ClientOption{}, fmt.Errorf("holidays.redis.addr is required when redis is enabled")
	}
	if strings.Contains(addr, "://") {
		opt, err = valkey.ParseURL(addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideHolidayProvider(svc holiday.Service) workingtime.HolidayProvider {
	return svc
}

func provideCatalogRefresher(svc holiday.Service) bootstrap.CatalogRefresher {
	return svc
}

func provideRefresher(cfg *config.Config, catalog bootstrap.CatalogRefresher, logger *slog.Logger) (*bootstrap.Refresher, error) {
	return bootstrap.NewRefresher(cfg.Holidays.RefreshCron, cfg.Holidays.FetchTimeout, catalog, logger)
}
