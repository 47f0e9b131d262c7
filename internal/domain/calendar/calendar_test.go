package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testHolidays = NewHolidaySet([]Holiday{
	{Date: "2025-01-01", Name: "Año Nuevo"},
	{Date: "2025-04-17", Name: "Jueves Santo"},
	{Date: "2025-04-18", Name: "Viernes Santo"},
})

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.WorkDays = nil
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LunchStartHour = 8
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LunchEndHour = 17
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.WorkDays = []time.Weekday{time.Weekday(9)}
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxSkipDays = 0
	require.Error(t, cfg.Validate())

	require.Equal(t, int64(480), DefaultConfig().DailyMinutes())
}

func TestIsWorkingDay(t *testing.T) {
	cal := newTestCalendar(t)

	require.True(t, cal.IsWorkingDay(local(2025, time.January, 13, 10, 0)))  // Monday
	require.True(t, cal.IsWorkingDay(local(2025, time.January, 17, 10, 0)))  // Friday
	require.False(t, cal.IsWorkingDay(local(2025, time.January, 18, 10, 0))) // Saturday
	require.False(t, cal.IsWorkingDay(local(2025, time.January, 19, 10, 0))) // Sunday

	// Saturday 02:00 UTC is still Friday evening in civil time.
	require.True(t, cal.IsWorkingDay(time.Date(2025, time.January, 18, 2, 0, 0, 0, time.UTC)))
}

func TestIsHolidayUsesCivilDate(t *testing.T) {
	cal := newTestCalendar(t)

	require.True(t, cal.IsHoliday(local(2025, time.January, 1, 0, 0), testHolidays))
	require.True(t, cal.IsHoliday(local(2025, time.January, 1, 23, 59), testHolidays))
	require.False(t, cal.IsHoliday(local(2025, time.January, 2, 9, 0), testHolidays))

	// 03:00 UTC on Jan 2 is 22:00 on Jan 1 in civil time.
	require.True(t, cal.IsHoliday(time.Date(2025, time.January, 2, 3, 0, 0, 0, time.UTC), testHolidays))
	require.False(t, cal.IsHoliday(local(2025, time.January, 1, 9, 0), HolidaySet{}))
}

func TestIsWorkingHourBoundaries(t *testing.T) {
	cal := newTestCalendar(t)
	day := local(2025, time.January, 13, 0, 0)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start of window", day.Add(8 * time.Hour), true},
		{"just before start", day.Add(8*time.Hour - time.Minute), false},
		{"morning", day.Add(11*time.Hour + 59*time.Minute), true},
		{"lunch start", day.Add(12 * time.Hour), false},
		{"inside lunch", day.Add(12*time.Hour + 59*time.Minute), false},
		{"lunch end", day.Add(13 * time.Hour), true},
		{"last millisecond", day.Add(17*time.Hour - time.Millisecond), true},
		{"end of window", day.Add(17 * time.Hour), false},
		{"night", day.Add(22 * time.Hour), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, cal.IsWorkingHour(tc.at))
		})
	}
}

func TestAdjustToWorkingTime(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"inside morning block", local(2025, time.January, 13, 10, 30), local(2025, time.January, 13, 10, 30)},
		{"inside afternoon block", local(2025, time.January, 13, 13, 0), local(2025, time.January, 13, 13, 0)},
		{"before opening goes to previous close", local(2025, time.January, 13, 7, 0), closing(2025, time.January, 10, 17)},
		{"after closing", local(2025, time.January, 13, 18, 0), closing(2025, time.January, 13, 17)},
		{"exactly at closing", local(2025, time.January, 13, 17, 0), closing(2025, time.January, 13, 17)},
		{"during lunch", local(2025, time.January, 13, 12, 30), closing(2025, time.January, 13, 12)},
		{"saturday afternoon", local(2025, time.January, 18, 14, 0), closing(2025, time.January, 17, 17)},
		{"sunday early morning", local(2025, time.January, 19, 6, 0), closing(2025, time.January, 17, 17)},
		{"holiday", local(2025, time.April, 17, 10, 0), closing(2025, time.April, 16, 17)},
		{"before opening after long weekend", local(2025, time.April, 21, 7, 0), closing(2025, time.April, 16, 17)},
		{"before opening after new year", local(2025, time.January, 2, 7, 0), closing(2024, time.December, 31, 17)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cal.AdjustToWorkingTime(tc.in, testHolidays)
			require.NoError(t, err)
			requireInstant(t, tc.want, got)
		})
	}
}

func TestAdjustToWorkingTimeIsIdempotent(t *testing.T) {
	cal := newTestCalendar(t)
	start := local(2025, time.April, 12, 0, 0)
	end := start.AddDate(0, 0, 14)

	for ts := start; ts.Before(end); ts = ts.Add(37 * time.Minute) {
		once, err := cal.AdjustToWorkingTime(ts, testHolidays)
		require.NoError(t, err)
		twice, err := cal.AdjustToWorkingTime(once, testHolidays)
		require.NoError(t, err)
		requireInstant(t, once, twice)
		require.False(t, once.After(ts), "adjusted %s is after input %s", once, ts)
		require.True(t, cal.IsBusinessDay(once, testHolidays))
		require.True(t, cal.IsWorkingHour(once))

		if cal.IsBusinessDay(ts, testHolidays) && cal.IsWorkingHour(ts) {
			requireInstant(t, ts, once)
		}
	}
}

func TestNextWorkingDay(t *testing.T) {
	cal := newTestCalendar(t)

	got, err := cal.NextWorkingDay(local(2025, time.January, 17, 9, 15), testHolidays)
	require.NoError(t, err)
	requireInstant(t, local(2025, time.January, 20, 9, 15), got)

	got, err = cal.NextWorkingDay(local(2025, time.April, 16, 16, 0), testHolidays)
	require.NoError(t, err)
	requireInstant(t, local(2025, time.April, 21, 16, 0), got)
}

func TestAddWorkingDays(t *testing.T) {
	cal := newTestCalendar(t)
	monday := local(2025, time.January, 13, 8, 0)

	got, err := cal.AddWorkingDays(monday, 0, testHolidays)
	require.NoError(t, err)
	require.Equal(t, monday, got)

	got, err = cal.AddWorkingDays(monday, 1, testHolidays)
	require.NoError(t, err)
	requireInstant(t, local(2025, time.January, 14, 8, 0), got)

	got, err = cal.AddWorkingDays(monday, 5, testHolidays)
	require.NoError(t, err)
	requireInstant(t, local(2025, time.January, 20, 8, 0), got)

	got, err = cal.AddWorkingDays(local(2025, time.April, 10, 10, 0), 5, testHolidays)
	require.NoError(t, err)
	requireInstant(t, local(2025, time.April, 21, 10, 0), got)

	start := local(2025, time.March, 28, 11, 0)
	for n := 1; n <= 40; n++ {
		got, err := cal.AddWorkingDays(start, n, testHolidays)
		require.NoError(t, err)
		require.True(t, cal.IsWorkingDay(got), "n=%d landed on %s", n, got.Weekday())
		require.False(t, cal.IsHoliday(got, testHolidays), "n=%d landed on holiday %s", n, got)
		require.Equal(t, 11, got.Hour())
	}
}

func TestAddWorkingHours(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name  string
		in    time.Time
		hours float64
		want  time.Time
	}{
		{"full day spans lunch", local(2025, time.January, 13, 8, 0), 8, local(2025, time.January, 13, 17, 0)},
		{"morning block exactly", local(2025, time.January, 13, 8, 0), 4, local(2025, time.January, 13, 12, 0)},
		{"crosses lunch", local(2025, time.January, 13, 8, 0), 5, local(2025, time.January, 13, 14, 0)},
		{"half hour before lunch", local(2025, time.January, 13, 11, 30), 1, local(2025, time.January, 13, 13, 30)},
		{"fractional", local(2025, time.January, 13, 11, 0), 1.5, local(2025, time.January, 13, 13, 30)},
		{"carries to next day", local(2025, time.January, 13, 15, 0), 4, local(2025, time.January, 14, 10, 0)},
		{"carries a full day", local(2025, time.January, 13, 16, 0), 9, local(2025, time.January, 14, 17, 0)},
		{"adjusted closing counts as boundary", closing(2025, time.January, 17, 17), 1, local(2025, time.January, 20, 9, 0)},
		{"adjusted lunch counts as boundary", closing(2025, time.January, 13, 12), 1, local(2025, time.January, 13, 14, 0)},
		{"skips holidays", local(2025, time.April, 16, 16, 0), 2, local(2025, time.April, 21, 9, 0)},
		{"weekend start", local(2025, time.January, 18, 10, 0), 1, local(2025, time.January, 20, 9, 0)},
		{"before opening", local(2025, time.January, 13, 7, 0), 1, local(2025, time.January, 13, 9, 0)},
		{"during lunch", local(2025, time.January, 13, 12, 15), 2, local(2025, time.January, 13, 15, 0)},
		{"multi day", local(2025, time.January, 13, 8, 0), 24, local(2025, time.January, 15, 17, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cal.AddWorkingHours(tc.in, tc.hours, testHolidays)
			require.NoError(t, err)
			requireInstant(t, tc.want, got)
		})
	}
}

func TestAddWorkingHoursKeepsSubMinuteStart(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name  string
		in    time.Time
		hours float64
		want  time.Time
	}{
		{"seconds kept", localSec(2025, time.January, 13, 10, 0, 40, 0), 1, localSec(2025, time.January, 13, 11, 0, 40, 0)},
		{"milliseconds kept", localSec(2025, time.January, 13, 9, 15, 7, 250), 2, localSec(2025, time.January, 13, 11, 15, 7, 250)},
		{"crosses lunch with seconds", localSec(2025, time.January, 13, 11, 59, 31, 0), 1, localSec(2025, time.January, 13, 13, 59, 31, 0)},
		{"seconds carried overnight", localSec(2025, time.January, 13, 16, 59, 31, 0), 1, localSec(2025, time.January, 14, 8, 59, 31, 0)},
		{"half a second before close is not a boundary", localSec(2025, time.January, 13, 16, 59, 59, 500), 1, localSec(2025, time.January, 14, 8, 59, 59, 500)},
		{"a millisecond before close is the boundary", closing(2025, time.January, 13, 17), 1, local(2025, time.January, 14, 9, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cal.AddWorkingHours(tc.in, tc.hours, testHolidays)
			require.NoError(t, err)
			requireInstant(t, tc.want, got)
		})
	}
}

func TestAdvanceRejectsOversizedAmounts(t *testing.T) {
	cal := newTestCalendar(t)
	start := local(2025, time.January, 13, 10, 0)

	_, err := cal.AddWorkingDays(start, MaxDays+1, testHolidays)
	require.ErrorIs(t, err, ErrHorizonExceeded)

	for _, hours := range []float64{MaxHours + 1, 1e16, float64(math.MaxInt64), math.Inf(1), math.NaN()} {
		_, err := cal.AddWorkingHours(start, hours, testHolidays)
		require.ErrorIs(t, err, ErrHorizonExceeded, "hours=%v", hours)
	}
}

func TestAdvanceAcceptsLargestAmounts(t *testing.T) {
	cal := newTestCalendar(t)
	start := local(2025, time.January, 13, 10, 0)

	got, err := cal.AddWorkingDays(start, MaxDays, testHolidays)
	require.NoError(t, err)
	require.True(t, got.After(start.AddDate(100, 0, 0)))

	got, err = cal.AddWorkingHours(start, MaxHours, testHolidays)
	require.NoError(t, err)
	require.True(t, cal.IsBusinessDay(got, testHolidays))
}

func TestAddWorkingHoursZeroIsIdentity(t *testing.T) {
	cal := newTestCalendar(t)
	in := time.Date(2025, time.January, 18, 19, 7, 3, 5, time.UTC)

	got, err := cal.AddWorkingHours(in, 0, testHolidays)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestAddWorkingHoursNeverEndsInsideLunch(t *testing.T) {
	cal := newTestCalendar(t)
	start := local(2025, time.January, 13, 8, 0)

	for minutes := 1; minutes <= 16*60; minutes += 7 {
		got, err := cal.AddWorkingHours(start, float64(minutes)/60, testHolidays)
		require.NoError(t, err)
		h := got.Hour()
		inLunch := h == 12 && (got.Minute() > 0 || got.Second() > 0)
		require.False(t, inLunch, "%d minutes landed inside lunch at %s", minutes, got)
	}
}

func TestAvailableMinutes(t *testing.T) {
	cal := newTestCalendar(t)

	require.Equal(t, int64(480), cal.AvailableMinutes(local(2025, time.January, 13, 8, 0)))
	require.Equal(t, int64(270), cal.AvailableMinutes(local(2025, time.January, 13, 11, 30)))
	require.Equal(t, int64(240), cal.AvailableMinutes(local(2025, time.January, 13, 13, 0)))
	require.Equal(t, int64(0), cal.AvailableMinutes(local(2025, time.January, 13, 12, 30)))
	require.Equal(t, int64(0), cal.AvailableMinutes(local(2025, time.January, 13, 17, 0)))
}

func TestHorizonExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSkipDays = 10
	cal, err := New(cfg)
	require.NoError(t, err)

	var items []Holiday
	start := local(2025, time.February, 1, 0, 0)
	for i := 0; i < 60; i++ {
		items = append(items, Holiday{Date: start.AddDate(0, 0, i).Format(DateLayout), Name: "closed"})
	}
	dense := NewHolidaySet(items)

	_, err = cal.NextWorkingDay(local(2025, time.January, 31, 9, 0), dense)
	require.ErrorIs(t, err, ErrHorizonExceeded)

	_, err = cal.AddWorkingHours(local(2025, time.January, 31, 16, 0), 2, dense)
	require.ErrorIs(t, err, ErrHorizonExceeded)

	_, err = cal.AdjustToWorkingTime(local(2025, time.March, 20, 9, 0), dense)
	require.ErrorIs(t, err, ErrHorizonExceeded)
}

func TestZoneProjectionRoundTrip(t *testing.T) {
	cal := newTestCalendar(t)
	base := time.Date(2024, time.March, 10, 6, 30, 0, 123000000, time.UTC)

	for i := 0; i < 400; i++ {
		x := base.Add(time.Duration(i) * 13 * time.Hour)
		loc := cal.ToLocal(x)
		require.True(t, cal.ToUTC(loc).Equal(x))
		require.Equal(t, x.Hour(), cal.ToUTC(loc).Hour())
		_, offset := loc.Zone()
		require.Equal(t, -5*3600, offset)
	}
}

func TestScenarios(t *testing.T) {
	cal := newTestCalendar(t)

	run := func(start time.Time, days int, hours float64) time.Time {
		t.Helper()
		cur, err := cal.AdjustToWorkingTime(cal.ToLocal(start), testHolidays)
		require.NoError(t, err)
		cur, err = cal.AddWorkingDays(cur, days, testHolidays)
		require.NoError(t, err)
		cur, err = cal.AddWorkingHours(cur, hours, testHolidays)
		require.NoError(t, err)
		return cal.ToUTC(cur)
	}

	// Monday 08:00 local + 1 day
	requireInstant(t, time.Date(2025, time.January, 14, 13, 0, 0, 0, time.UTC),
		run(time.Date(2025, time.January, 13, 13, 0, 0, 0, time.UTC), 1, 0))
	// Monday 08:00 local + 8 hours
	requireInstant(t, time.Date(2025, time.January, 13, 22, 0, 0, 0, time.UTC),
		run(time.Date(2025, time.January, 13, 13, 0, 0, 0, time.UTC), 0, 8))
	// Saturday 14:00 local + 1 hour
	requireInstant(t, time.Date(2025, time.January, 20, 14, 0, 0, 0, time.UTC),
		run(time.Date(2025, time.January, 18, 19, 0, 0, 0, time.UTC), 0, 1))
	// Thursday 10:00 local + 5 days + 4 hours across Holy Week
	requireInstant(t, time.Date(2025, time.April, 21, 20, 0, 0, 0, time.UTC),
		run(time.Date(2025, time.April, 10, 15, 0, 0, 0, time.UTC), 5, 4))
}

func TestHolidaySet(t *testing.T) {
	set := NewHolidaySet([]Holiday{
		{Date: "2025-12-25", Name: "Navidad"},
		{Date: "2025-12-25", Name: "Christmas"},
		{Date: "2025-01-01", Name: "Año Nuevo"},
	})
	require.Equal(t, 2, set.Len())
	name, ok := set.Name("2025-12-25")
	require.True(t, ok)
	require.Equal(t, "Navidad", name)
	require.False(t, HolidaySet{}.Contains("2025-12-25"))

	items := []Holiday{{Date: "2025-12-25", Name: "b"}, {Date: "2025-01-01", Name: "a"}}
	SortHolidays(items)
	require.Equal(t, "2025-01-01", items[0].Date)

	day, err := items[0].Day(Zone)
	require.NoError(t, err)
	requireInstant(t, local(2025, time.January, 1, 0, 0), day)
}

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := New(DefaultConfig())
	require.NoError(t, err)
	return cal
}

func local(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, Zone)
}

func localSec(year int, month time.Month, day, hour, minute, sec, ms int) time.Time {
	return time.Date(year, month, day, hour, minute, sec, ms*int(time.Millisecond), Zone)
}

func closing(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour-1, 59, 59, int(999*time.Millisecond), Zone)
}

func requireInstant(t *testing.T, want, got time.Time) {
	t.Helper()
	require.Truef(t, want.Equal(got), "want %s, got %s", want, got)
}
