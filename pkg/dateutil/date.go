package dateutil

import (
	"errors"
	"time"
)

// ErrEmptyDate is returned when a blank string is parsed as a date
var ErrEmptyDate = errors.New("date is empty")

// ErrDateOutOfRange is returned for 0001-01-01, which is reserved for "unset"
var ErrDateOutOfRange = errors.New("date is out of range")

const secondsPerDay = 24 * 60 * 60

// Date is a calendar day with no time-of-day or timezone semantics.
// The zero value means "unset". Dates are comparable with ==.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate builds a Date; out-of-range components normalise like time.Date
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf strips the time-of-day, keeping the wall-clock calendar day of t
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsWeekend() bool       { return IsWeekend(d.t) }

// Time returns the date as midnight UTC
func (d Date) Time() time.Time { return d.t }

// AddDays returns a new date n days later (or earlier for negative n)
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }

// Compare returns -1, 0 or +1
func (d Date) Compare(other Date) int {
	switch {
	case d.t.Before(other.t):
		return -1
	case d.t.After(other.t):
		return 1
	default:
		return 0
	}
}

// DaysUntil returns the number of calendar days from d to other
func (d Date) DaysUntil(other Date) int {
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(ISOLayout)
}

// Format formats the date with a time layout
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MinDate returns the earlier of two dates
func MinDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDate returns the later of two dates
func MaxDate(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}
