package workingtime

import "strconv"

// Error codes surfaced to the transport layer.
const (
	CodeMissingParameter  = "missing_parameter"
	CodeInvalidInteger    = "invalid_integer"
	CodeInvalidDateFormat = "invalid_date_format"
	CodeUnparseableDate   = "unparseable_date"
	CodeHorizonExceeded   = "calendar_horizon_exceeded"
)

const (
	msgMissingParameter  = `at least one of the "days" or "hours" parameters must be provided`
	msgInvalidDateFormat = `the "date" parameter must be in UTC with a Z suffix`
	msgUnparseableDate   = `the "date" parameter must be a valid ISO 8601 date`
	msgHorizonExceeded   = "no business time found within the calendar horizon"
)

func invalidIntegerMessage(name string) string {
	return `the "` + name + `" parameter must be a non-negative integer`
}

func tooLargeMessage(name string, max int) string {
	return `the "` + name + `" parameter must not exceed ` + strconv.Itoa(max)
}
