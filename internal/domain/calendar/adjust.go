package calendar

import "time"

// AdjustToWorkingTime snaps t to the latest business instant that is not after t.
//
// Instants on non-business days, before the work window, after it, or inside lunch are
// moved to the closing instant (HH:59:59.999) of the preceding working block. Instants
// already inside a working block are returned unchanged. The operation is idempotent.
func (c *Calendar) AdjustToWorkingTime(t time.Time, holidays HolidaySet) (time.Time, error) {
	local := c.ToLocal(t)
	day, err := c.walk(local, -1, holidays)
	if err != nil {
		return time.Time{}, err
	}
	if !sameDate(day, local) {
		// every instant of an earlier business day precedes t, so the latest is its close
		return c.lastInstantBefore(day, c.cfg.EndHour), nil
	}

	switch h := day.Hour(); {
	case h < c.cfg.StartHour:
		prev, err := c.walk(day.AddDate(0, 0, -1), -1, holidays)
		if err != nil {
			return time.Time{}, err
		}
		return c.lastInstantBefore(prev, c.cfg.EndHour), nil
	case h >= c.cfg.EndHour:
		return c.lastInstantBefore(day, c.cfg.EndHour), nil
	case c.inLunch(h):
		return c.lastInstantBefore(day, c.cfg.LunchStartHour), nil
	}
	return day, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
