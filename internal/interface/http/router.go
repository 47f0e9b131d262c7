package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/workcalc/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		requestIDMiddleware(),
		recoveryMiddleware(handler.logger),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/", handler.CalculateWorkingTime)
	router.GET("/calculate-working-time", handler.CalculateWorkingTime)
	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/holidays", handler.ListHolidays)
		api.GET("/holidays.ics", handler.ExportHolidaysICS)
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, NewHTTPError(http.StatusNotFound, codeNotFound, "endpoint not found", nil))
	})

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
