// Package calendar implements working-time arithmetic over a fixed weekly template,
// a daily work window with a lunch exclusion, and a holiday set.
//
// Every exported operation interprets its instant in the calendar's civil zone and
// returns civil time. The engine holds no mutable state and is safe for concurrent use.
package calendar

import (
	"errors"
	"time"
)

// UTCOffset is the fixed civil offset of the calendar. Colombia observes no daylight saving.
const UTCOffset = -5 * time.Hour

// Zone is the civil timezone used for all calendar arithmetic.
var Zone = time.FixedZone("America/Bogota", int(UTCOffset/time.Second))

// ErrHorizonExceeded is returned when no business day exists within the configured skip limit,
// or when a requested amount lies beyond MaxDays or MaxHours.
var ErrHorizonExceeded = errors.New("no business day within calendar horizon")

// Upper bounds on a single advance. Larger amounts are rejected before any iteration.
const (
	MaxDays  = 100 * 366
	MaxHours = MaxDays * 24
)

// Calendar evaluates and advances instants against a work template.
type Calendar struct {
	cfg      Config
	workDays [7]bool
	zone     *time.Location
}

// New validates cfg and builds a calendar in the fixed civil zone.
func New(cfg Config) (*Calendar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Calendar{cfg: cfg, zone: Zone}
	for _, d := range cfg.WorkDays {
		c.workDays[d] = true
	}
	return c, nil
}

// Config returns the template the calendar was built from.
func (c *Calendar) Config() Config {
	return c.cfg
}

// Location returns the civil zone.
func (c *Calendar) Location() *time.Location {
	return c.zone
}

// ToLocal projects t into civil time.
func (c *Calendar) ToLocal(t time.Time) time.Time {
	return t.In(c.zone)
}

// ToUTC projects t back into UTC.
func (c *Calendar) ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// DateKey returns the civil calendar date of t as YYYY-MM-DD.
func (c *Calendar) DateKey(t time.Time) string {
	return c.ToLocal(t).Format(DateLayout)
}

// IsWorkingDay reports whether the civil weekday of t belongs to the work week.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	return c.workDays[c.ToLocal(t).Weekday()]
}

// IsHoliday reports whether the civil date of t is in holidays.
func (c *Calendar) IsHoliday(t time.Time, holidays HolidaySet) bool {
	return holidays.Contains(c.DateKey(t))
}

// IsBusinessDay is IsWorkingDay and not IsHoliday.
func (c *Calendar) IsBusinessDay(t time.Time, holidays HolidaySet) bool {
	return c.IsWorkingDay(t) && !c.IsHoliday(t, holidays)
}

// IsWorkingHour reports whether t falls in [start, end) and outside [lunchStart, lunchEnd).
func (c *Calendar) IsWorkingHour(t time.Time) bool {
	h := c.ToLocal(t).Hour()
	if h < c.cfg.StartHour || h >= c.cfg.EndHour {
		return false
	}
	return !c.inLunch(h)
}

func (c *Calendar) inLunch(hour int) bool {
	return hour >= c.cfg.LunchStartHour && hour < c.cfg.LunchEndHour
}

// at returns t's civil date with the given wall clock.
func (c *Calendar) at(t time.Time, hour, minute, sec, nsec int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, sec, nsec, c.zone)
}

// lastInstantBefore returns hour-1:59:59.999 on t's date.
func (c *Calendar) lastInstantBefore(t time.Time, hour int) time.Time {
	return c.at(t, hour-1, 59, 59, int(999*time.Millisecond))
}

// walk moves t by step days until it lands on a business day.
// The starting day itself is checked first.
func (c *Calendar) walk(t time.Time, step int, holidays HolidaySet) (time.Time, error) {
	for skipped := 0; !c.IsBusinessDay(t, holidays); skipped++ {
		if skipped >= c.cfg.MaxSkipDays {
			return time.Time{}, ErrHorizonExceeded
		}
		t = t.AddDate(0, 0, step)
	}
	return t, nil
}
