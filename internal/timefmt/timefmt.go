// Package timefmt holds the timestamp layouts used in the data files.
//
// Values are written in the process's local time zone with no offset, so a
// data directory moved between zones will read back shifted wall-clock times.
package timefmt

import "time"

// Layouts for the two timestamp shapes stored on disk.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Date formats t as YYYY-MM-DD in local time.
func Date(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// DateTime formats t as YYYY-MM-DD HH:MM:SS in local time.
func DateTime(t time.Time) string {
	return t.Local().Format(DateTimeLayout)
}

// ParseDate parses a YYYY-MM-DD string in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// ParseDateTime parses a YYYY-MM-DD HH:MM:SS string in local time.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, s, time.Local)
}
