package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the textual form used for every date the calculator emits
const ISOLayout = "2006-01-02"

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses a date string in any of the accepted input formats.
// ISO-8601 is tried first, then day/month/year.
func ParseDate(dateStr string) (Date, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return Date{}, ErrEmptyDate
	}

	formats := []string{
		ISOLayout,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			d := DateOf(t)
			if d.IsZero() {
				return Date{}, ErrDateOutOfRange
			}
			return d, nil
		}
	}

	if d, err := ParseDMY(s); err == nil {
		return d, nil
	}

	return Date{}, fmt.Errorf("unrecognised date %q", dateStr)
}

// ParseDMY parses a day/month/year literal such as "5/01/2024" or "05/1/2024".
// Day and month may have one or two digits, the year must have four.
func ParseDMY(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("date %q is not in d/m/yyyy form", s)
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) < 1 || len(parts[1]) > 2 || len(parts[2]) != 4 {
		return Date{}, fmt.Errorf("date %q is not in d/m/yyyy form", s)
	}

	for _, part := range parts {
		if !allDigits(part) {
			return Date{}, fmt.Errorf("date %q is not in d/m/yyyy form", s)
		}
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day in %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}

	return validDate(year, month, day, s)
}

// validDate rejects values that time.Date would silently normalise (31/02 etc.)
func validDate(year, month, day int, raw string) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month out of range in %q", raw)
	}
	d := NewDate(year, time.Month(month), day)
	if d.Day() != day || int(d.Month()) != month {
		return Date{}, fmt.Errorf("day out of range in %q", raw)
	}
	if d.IsZero() {
		return Date{}, fmt.Errorf("%w: %q", ErrDateOutOfRange, raw)
	}
	return d, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Today returns today's date in local calendar terms
func Today() Date {
	return DateOf(time.Now())
}
