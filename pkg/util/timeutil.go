package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ISOMillis is the response layout: RFC 3339 with millisecond precision and a Z suffix.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// FormatISOMillis renders t in UTC using ISOMillis.
func FormatISOMillis(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}
