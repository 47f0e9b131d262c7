package calendar

import (
	"sort"
	"time"
)

// DateLayout is the civil date key used for holiday matching.
const DateLayout = "2006-01-02"

// Holiday is a non-working calendar date. Name is for display only.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Day parses the holiday date as midnight in the given zone.
func (h Holiday) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, h.Date, loc)
}

// HolidaySet is an immutable lookup of holiday dates. The zero value is an empty set.
type HolidaySet struct {
	names map[string]string
}

// NewHolidaySet indexes holidays by date. Duplicate dates keep the first name seen.
func NewHolidaySet(items []Holiday) HolidaySet {
	names := make(map[string]string, len(items))
	for _, item := range items {
		if _, ok := names[item.Date]; ok {
			continue
		}
		names[item.Date] = item.Name
	}
	return HolidaySet{names: names}
}

// Contains reports whether date (YYYY-MM-DD) is a holiday.
func (s HolidaySet) Contains(date string) bool {
	_, ok := s.names[date]
	return ok
}

// Name returns the display name registered for date.
func (s HolidaySet) Name(date string) (string, bool) {
	name, ok := s.names[date]
	return name, ok
}

// Len returns the number of distinct holiday dates.
func (s HolidaySet) Len() int {
	return len(s.names)
}

// SortHolidays orders holidays by date, then by name.
func SortHolidays(items []Holiday) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date == items[j].Date {
			return items[i].Name < items[j].Name
		}
		return items[i].Date < items[j].Date
	})
}
