package workingtime

import "time"

// Params carries raw query parameters. A nil field means the parameter was absent.
type Params struct {
	Days  *string
	Hours *string
	Date  *string
}

// Input is a validated calculation request.
type Input struct {
	Days  int
	Hours int
	// Start is the UTC starting instant. Zero means "now".
	Start time.Time
}

// Result is the advanced instant, always in UTC.
type Result struct {
	Date time.Time
}

// Response is serialized back to API consumers.
type Response struct {
	Date string `json:"date"`
}
