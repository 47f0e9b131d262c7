package workingtime

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	apperrors "github.com/yanqian/workcalc/pkg/errors"
	"github.com/yanqian/workcalc/pkg/util"
)

// Service computes business-time offsets.
type Service interface {
	Calculate(ctx context.Context, in Input) (Result, error)
}

// HolidayProvider supplies the holiday set used for one calculation.
type HolidayProvider interface {
	Holidays(ctx context.Context) (calendar.HolidaySet, error)
}

type service struct {
	cal      *calendar.Calendar
	holidays HolidayProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the calculation service.
func NewService(cal *calendar.Calendar, holidays HolidayProvider, logger *slog.Logger) Service {
	return &service{
		cal:      cal,
		holidays: holidays,
		logger:   logger.With("component", "workingtime.service"),
		now:      util.NowUTC,
	}
}

// Calculate fetches the holiday set once, snaps the start back to business time, then adds
// days followed by hours. The result is in UTC.
func (s *service) Calculate(ctx context.Context, in Input) (Result, error) {
	holidays, err := s.holidays.Holidays(ctx)
	if err != nil {
		return Result{}, err
	}

	start := in.Start
	if start.IsZero() {
		start = s.now()
	}

	cur, err := s.cal.AdjustToWorkingTime(s.cal.ToLocal(start), holidays)
	if err != nil {
		return Result{}, s.engineError(err, in)
	}
	if in.Days > 0 {
		if cur, err = s.cal.AddWorkingDays(cur, in.Days, holidays); err != nil {
			return Result{}, s.engineError(err, in)
		}
	}
	if in.Hours > 0 {
		if cur, err = s.cal.AddWorkingHours(cur, float64(in.Hours), holidays); err != nil {
			return Result{}, s.engineError(err, in)
		}
	}

	result := s.cal.ToUTC(cur)
	s.logger.Debug("working time calculated", "start", start, "days", in.Days, "hours", in.Hours, "result", result)
	return Result{Date: result}, nil
}

func (s *service) engineError(err error, in Input) error {
	if errors.Is(err, calendar.ErrHorizonExceeded) {
		s.logger.Warn("calendar horizon exceeded", "days", in.Days, "hours", in.Hours)
		return apperrors.Wrap(CodeHorizonExceeded, msgHorizonExceeded, err)
	}
	return err
}

// NewResponse renders a result with millisecond precision and a Z suffix.
func NewResponse(r Result) Response {
	return Response{Date: util.FormatISOMillis(r.Date)}
}
