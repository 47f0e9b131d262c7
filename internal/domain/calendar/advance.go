package calendar

import (
	"math"
	"time"
)

// NextWorkingDay returns the first business day after t's date, keeping t's wall clock.
func (c *Calendar) NextWorkingDay(t time.Time, holidays HolidaySet) (time.Time, error) {
	return c.walk(c.ToLocal(t).AddDate(0, 0, 1), 1, holidays)
}

// AddWorkingDays advances t by n business days, keeping its wall clock.
// Weekends and holidays are skipped and never counted. n <= 0 returns t unchanged.
// n above MaxDays fails with ErrHorizonExceeded.
func (c *Calendar) AddWorkingDays(t time.Time, n int, holidays HolidaySet) (time.Time, error) {
	if n <= 0 {
		return t, nil
	}
	if n > MaxDays {
		return time.Time{}, ErrHorizonExceeded
	}
	cur := c.ToLocal(t)
	for i := 0; i < n; i++ {
		next, err := c.NextWorkingDay(cur, holidays)
		if err != nil {
			return time.Time{}, err
		}
		cur = next
	}
	return cur, nil
}

// AddWorkingHours advances t by hours of business time. Only time inside the work window
// and outside lunch is consumed; any remainder carries into following business days.
//
// The amount is rounded to whole minutes. The start keeps its seconds, except that a
// position within a millisecond of an hour boundary (the 16:59:59.999 left by
// AdjustToWorkingTime) counts as that boundary. A result that exactly exhausts a block is
// reported at the block's end (12:00 or 17:00). hours <= 0 returns t unchanged and hours
// above MaxHours fails with ErrHorizonExceeded.
func (c *Calendar) AddWorkingHours(t time.Time, hours float64, holidays HolidaySet) (time.Time, error) {
	if hours <= 0 {
		return t, nil
	}
	if !(hours <= MaxHours) {
		return time.Time{}, ErrHorizonExceeded
	}
	remaining := time.Duration(math.Round(hours*60)) * time.Minute
	if remaining == 0 {
		return t, nil
	}

	cur := c.snapToBoundary(c.ToLocal(t))
	limit := c.stepLimit(remaining)
	for step := 0; ; step++ {
		if step > limit {
			return time.Time{}, ErrHorizonExceeded
		}

		if !c.IsBusinessDay(cur, holidays) {
			next, err := c.nextOpening(cur, holidays)
			if err != nil {
				return time.Time{}, err
			}
			cur = next
			continue
		}

		switch h := cur.Hour(); {
		case h < c.cfg.StartHour:
			cur = c.at(cur, c.cfg.StartHour, 0, 0, 0)
		case h >= c.cfg.EndHour:
			next, err := c.nextOpening(cur, holidays)
			if err != nil {
				return time.Time{}, err
			}
			cur = next
			continue
		case c.inLunch(h):
			cur = c.at(cur, c.cfg.LunchEndHour, 0, 0, 0)
		}

		available := c.available(cur)
		if remaining <= available {
			return c.consume(cur, remaining), nil
		}
		remaining -= available
		next, err := c.nextOpening(cur, holidays)
		if err != nil {
			return time.Time{}, err
		}
		cur = next
	}
}

// AvailableMinutes returns the whole working minutes left on t's day after t, excluding
// lunch. It is zero when t is outside working hours.
func (c *Calendar) AvailableMinutes(t time.Time) int64 {
	return int64(c.available(c.ToLocal(t)) / time.Minute)
}

func (c *Calendar) available(local time.Time) time.Duration {
	if !c.IsWorkingHour(local) {
		return 0
	}
	left := c.at(local, c.cfg.EndHour, 0, 0, 0).Sub(local)
	if local.Hour() < c.cfg.LunchStartHour {
		left -= time.Duration(c.cfg.LunchEndHour-c.cfg.LunchStartHour) * time.Hour
	}
	return left
}

// consume adds work to a position inside working hours of the same day,
// jumping over lunch when the morning block is exhausted.
func (c *Calendar) consume(cur time.Time, work time.Duration) time.Time {
	if cur.Hour() < c.cfg.LunchStartHour {
		untilLunch := c.at(cur, c.cfg.LunchStartHour, 0, 0, 0).Sub(cur)
		if work <= untilLunch {
			return cur.Add(work)
		}
		work -= untilLunch
		cur = c.at(cur, c.cfg.LunchEndHour, 0, 0, 0)
	}
	return cur.Add(work)
}

// snapToBoundary moves t onto the next full hour when it is at most a millisecond short of it.
func (c *Calendar) snapToBoundary(t time.Time) time.Time {
	next := c.at(t, t.Hour()+1, 0, 0, 0)
	if next.Sub(t) <= time.Millisecond {
		return next
	}
	return t
}

// nextOpening returns the start of the work window on the next business day.
func (c *Calendar) nextOpening(t time.Time, holidays HolidaySet) (time.Time, error) {
	next, err := c.NextWorkingDay(t, holidays)
	if err != nil {
		return time.Time{}, err
	}
	return c.at(next, c.cfg.StartHour, 0, 0, 0), nil
}

// stepLimit bounds the hour loop: each business day costs at most three iterations.
func (c *Calendar) stepLimit(work time.Duration) int {
	days := int64(work/time.Minute)/c.cfg.DailyMinutes() + 2
	return int(days)*3 + 4
}
