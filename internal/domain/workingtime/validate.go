package workingtime

import (
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	apperrors "github.com/yanqian/workcalc/pkg/errors"
)

// ValidateParams checks the query contract: days and/or hours as non-negative integers no
// larger than calendar.MaxDays and calendar.MaxHours, and an optional date in ISO 8601
// ending with Z.
func ValidateParams(p Params) (Input, error) {
	if isBlank(p.Days) && isBlank(p.Hours) {
		return Input{}, apperrors.Wrap(CodeMissingParameter, msgMissingParameter, nil)
	}

	var (
		in  Input
		err error
	)
	if p.Days != nil {
		if in.Days, err = parseCount("days", *p.Days, calendar.MaxDays); err != nil {
			return Input{}, err
		}
	}
	if p.Hours != nil {
		if in.Hours, err = parseCount("hours", *p.Hours, calendar.MaxHours); err != nil {
			return Input{}, err
		}
	}
	if p.Date != nil {
		if in.Start, err = parseDate(*p.Date); err != nil {
			return Input{}, err
		}
	}
	return in, nil
}

func isBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

func parseCount(name, raw string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, apperrors.Wrap(CodeInvalidInteger, invalidIntegerMessage(name), err)
	}
	if n > max {
		return 0, apperrors.Wrap(CodeInvalidInteger, tooLargeMessage(name, max), nil)
	}
	return n, nil
}

// dateLayouts are the accepted UTC forms, second precision first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if !strings.HasSuffix(value, "Z") {
		return time.Time{}, apperrors.Wrap(CodeInvalidDateFormat, msgInvalidDateFormat, nil)
	}
	var (
		ts  time.Time
		err error
	)
	for _, layout := range dateLayouts {
		if ts, err = time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, apperrors.Wrap(CodeUnparseableDate, msgUnparseableDate, err)
}
