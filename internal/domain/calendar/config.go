package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Config describes the static weekly/daily work template.
type Config struct {
	WorkDays       []time.Weekday
	StartHour      int
	EndHour        int
	LunchStartHour int
	LunchEndHour   int
	// MaxSkipDays caps how many consecutive non-business days a single day walk may cross.
	MaxSkipDays int
}

// DefaultConfig returns the Monday-Friday 08:00-17:00 calendar with a 12:00-13:00 lunch break.
func DefaultConfig() Config {
	return Config{
		WorkDays:       []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StartHour:      8,
		EndHour:        17,
		LunchStartHour: 12,
		LunchEndHour:   13,
		MaxSkipDays:    366,
	}
}

// Validate ensures the template can produce at least one working minute per business day.
func (c Config) Validate() error {
	if len(c.WorkDays) == 0 {
		return errors.New("calendar.workDays cannot be empty")
	}
	for _, d := range c.WorkDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("calendar.workDays contains invalid weekday %d", d)
		}
	}
	if c.StartHour < 0 || c.EndHour > 24 {
		return errors.New("calendar hours must be within 0-24")
	}
	if !(c.StartHour < c.LunchStartHour && c.LunchStartHour <= c.LunchEndHour && c.LunchEndHour < c.EndHour) {
		return fmt.Errorf("calendar hours must satisfy start < lunchStart <= lunchEnd < end (got %d, %d, %d, %d)",
			c.StartHour, c.LunchStartHour, c.LunchEndHour, c.EndHour)
	}
	if c.MaxSkipDays <= 0 {
		return errors.New("calendar.maxSkipDays must be positive")
	}
	return nil
}

// DailyMinutes is the amount of countable work in one business day.
func (c Config) DailyMinutes() int64 {
	return int64((c.EndHour-c.StartHour)-(c.LunchEndHour-c.LunchStartHour)) * 60
}
