//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/workcalc/internal/bootstrap"
	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
	"github.com/yanqian/workcalc/internal/domain/workingtime"
	"github.com/yanqian/workcalc/internal/infra/config"
	httpiface "github.com/yanqian/workcalc/internal/interface/http"
	"github.com/yanqian/workcalc/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCalendarConfig,
		provideHolidayConfig,
		provideFallbackHolidays,
		provideHolidaySource,
		provideHolidayStore,
		provideHolidayProvider,
		provideCatalogRefresher,
		provideRefresher,
		calendar.New,
		holiday.NewService,
		workingtime.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
