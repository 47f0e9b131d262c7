package holiday

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yanqian/workcalc/internal/domain/calendar"
)

// ErrEmptyCatalog signals a payload without any usable holiday.
var ErrEmptyCatalog = errors.New("holiday catalog is empty")

type wireHoliday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Decode parses a JSON array of {"date","name"} objects. Dates may carry a time component,
// only the leading YYYY-MM-DD is kept. Entries whose date cannot be parsed are dropped.
func Decode(payload []byte) ([]calendar.Holiday, error) {
	var raw []wireHoliday
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}
	items := make([]calendar.Holiday, 0, len(raw))
	for _, entry := range raw {
		date := strings.TrimSpace(entry.Date)
		if len(date) > len(calendar.DateLayout) {
			date = date[:len(calendar.DateLayout)]
		}
		if _, err := time.Parse(calendar.DateLayout, date); err != nil {
			continue
		}
		items = append(items, calendar.Holiday{Date: date, Name: strings.TrimSpace(entry.Name)})
	}
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	return items, nil
}
