package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
	"github.com/yanqian/workcalc/internal/domain/workingtime"
	apperrors "github.com/yanqian/workcalc/pkg/errors"
)

const icsProductID = "-//workcalc//holidays//ES"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	calc     workingtime.Service
	holidays holiday.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(calc workingtime.Service, holidays holiday.Service, logger *slog.Logger) *Handler {
	return &Handler{
		calc:     calc,
		holidays: holidays,
		logger:   logger.With("component", "http.handler"),
	}
}

// CalculateWorkingTime advances the requested business days and hours.
func (h *Handler) CalculateWorkingTime(c *gin.Context) {
	params := workingtime.Params{
		Days:  queryParam(c, "days"),
		Hours: queryParam(c, "hours"),
		Date:  queryParam(c, "date"),
	}
	in, err := workingtime.ValidateParams(params)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidParameters, apperrors.MessageOf(err), err))
		return
	}

	result, err := h.calc.Calculate(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, calculationError(err))
		return
	}

	c.JSON(http.StatusOK, workingtime.NewResponse(result))
}

// ListHolidays returns the current holiday catalog sorted by date.
func (h *Handler) ListHolidays(c *gin.Context) {
	items, err := h.holidays.List(c.Request.Context())
	if err != nil {
		abortWithError(c, calculationError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"holidays": items, "count": len(items)})
}

// ExportHolidaysICS renders the catalog as an iCalendar feed of all-day events.
func (h *Handler) ExportHolidaysICS(c *gin.Context) {
	items, err := h.holidays.List(c.Request.Context())
	if err != nil {
		abortWithError(c, calculationError(err))
		return
	}

	feed := holidayFeed(items, time.Now().UTC())
	c.Header("Content-Disposition", `attachment; filename="holidays.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed.Serialize()))
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func holidayFeed(items []calendar.Holiday, stamp time.Time) *ical.Calendar {
	feed := ical.NewCalendar()
	feed.SetMethod(ical.MethodPublish)
	feed.SetProductId(icsProductID)
	feed.SetXWRCalName("Festivos")
	feed.SetXWRTimezone(calendar.Zone.String())
	for _, item := range items {
		day, err := item.Day(time.UTC)
		if err != nil {
			continue
		}
		event := feed.AddEvent(fmt.Sprintf("%s@workcalc", item.Date))
		event.SetDtStampTime(stamp)
		event.SetSummary(item.Name)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
	}
	return feed
}

func queryParam(c *gin.Context, name string) *string {
	value, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	return &value
}

func calculationError(err error) *HTTPError {
	switch {
	case apperrors.IsCode(err, holiday.CodeUpstreamFailure):
		return NewHTTPError(http.StatusServiceUnavailable, codeServiceUnavailable, apperrors.MessageOf(err), err)
	case apperrors.IsCode(err, workingtime.CodeHorizonExceeded):
		return NewHTTPError(http.StatusUnprocessableEntity, codeHorizonExceeded, apperrors.MessageOf(err), err)
	default:
		return asHTTPError(err)
	}
}
