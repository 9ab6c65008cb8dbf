package timefmt

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 5, 1, 0, time.Local)
	if got := Date(ts); got != "2024-03-07" {
		t.Errorf("Date() = %q, want %q", got, "2024-03-07")
	}
	if got := DateTime(ts); got != "2024-03-07 09:05:01" {
		t.Errorf("DateTime() = %q, want %q", got, "2024-03-07 09:05:01")
	}
}

func TestParseRoundTrip(t *testing.T) {
	ts := time.Date(2023, 12, 31, 23, 59, 58, 0, time.Local)

	d, err := ParseDateTime(DateTime(ts))
	if err != nil {
		t.Fatalf("ParseDateTime() error = %v", err)
	}
	if !d.Equal(ts) {
		t.Errorf("ParseDateTime() = %v, want %v", d, ts)
	}

	day, err := ParseDate(Date(ts))
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if day.Year() != 2023 || day.Month() != 12 || day.Day() != 31 {
		t.Errorf("ParseDate() = %v, want 2023-12-31", day)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024/01/01", "2024-13-01", "2024-01-01 10:00:00"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) expected error", s)
		}
	}
}
