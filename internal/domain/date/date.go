// Package date provides the calendar-day value used on projects and tasks.
// The wire format is "2006-01-02"; RFC 3339 timestamps from older clients
// are accepted on input and truncated to their day.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the wire and storage format for dates.
const Layout = "2006-01-02"

// Date is a calendar day without a time of day or location. The zero value
// is "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New builds a Date from its parts.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime truncates a timestamp to its calendar day.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Parse converts a wire string into a Date. Plain "2006-01-02" values and
// full RFC 3339 timestamps are both accepted.
func Parse(s string) (Date, error) {
	if t, err := time.Parse(Layout, s); err == nil {
		return FromTime(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON renders the date as a "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a date string, or null and "" for the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
