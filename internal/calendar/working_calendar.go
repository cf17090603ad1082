package calendar

import (
	"fmt"
	"time"

	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
)

// Blackout is a recurring non-working window given as month/day bounds.
// When Start falls after End in the year the window wraps New Year.
type Blackout struct {
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

// DefaultBlackout is the 20 December - 10 January statutory shutdown
var DefaultBlackout = Blackout{
	StartMonth: time.December,
	StartDay:   20,
	EndMonth:   time.January,
	EndDay:     10,
}

// ParseBlackout builds a Blackout from "MM-DD" bounds
func ParseBlackout(start, end string) (Blackout, error) {
	var b Blackout
	var sm, em int
	if _, err := fmt.Sscanf(start, "%d-%d", &sm, &b.StartDay); err != nil {
		return Blackout{}, fmt.Errorf("invalid blackout start %q: %w", start, err)
	}
	if _, err := fmt.Sscanf(end, "%d-%d", &em, &b.EndDay); err != nil {
		return Blackout{}, fmt.Errorf("invalid blackout end %q: %w", end, err)
	}
	b.StartMonth = time.Month(sm)
	b.EndMonth = time.Month(em)
	if err := b.Validate(); err != nil {
		return Blackout{}, err
	}
	return b, nil
}

// Validate checks the bounds name real days of a leap year
func (b Blackout) Validate() error {
	for _, md := range [][2]int{{int(b.StartMonth), b.StartDay}, {int(b.EndMonth), b.EndDay}} {
		if md[0] < 1 || md[0] > 12 {
			return fmt.Errorf("blackout month %d out of range", md[0])
		}
		d := dateutil.NewDate(2024, time.Month(md[0]), md[1])
		if md[1] < 1 || d.Day() != md[1] {
			return fmt.Errorf("blackout day %02d-%02d out of range", md[0], md[1])
		}
	}
	return nil
}

// Contains reports whether the date falls inside the window, bounds inclusive
func (b Blackout) Contains(date dateutil.Date) bool {
	md := monthDay(date.Month(), date.Day())
	start := monthDay(b.StartMonth, b.StartDay)
	end := monthDay(b.EndMonth, b.EndDay)

	if start <= end {
		return md >= start && md <= end
	}
	return md >= start || md <= end
}

func (b Blackout) String() string {
	return fmt.Sprintf("%02d-%02d..%02d-%02d", b.StartMonth, b.StartDay, b.EndMonth, b.EndDay)
}

func monthDay(m time.Month, d int) int {
	return int(m)*100 + d
}

// WorkingDayCalendar classifies dates from weekends, a fixed holiday list
// and a recurring blackout window. It holds no mutable state.
type WorkingDayCalendar struct {
	holidays *HolidaySet
	blackout Blackout
}

// NewWorkingDayCalendar creates a classifier; a nil holiday set is treated as empty
func NewWorkingDayCalendar(holidays *HolidaySet, blackout Blackout) *WorkingDayCalendar {
	return &WorkingDayCalendar{
		holidays: holidays,
		blackout: blackout,
	}
}

// Classify applies the rules in order: weekend, fixed holiday, blackout
func (c *WorkingDayCalendar) Classify(date dateutil.Date) DayType {
	switch {
	case date.IsWeekend():
		return DayTypeWeekend
	case c.holidays.Contains(date):
		return DayTypeHoliday
	case c.blackout.Contains(date):
		return DayTypeSeasonalBlackout
	default:
		return DayTypeWorkday
	}
}

// IsWorkingDay checks if the given date is a working day
func (c *WorkingDayCalendar) IsWorkingDay(date dateutil.Date) bool {
	return c.Classify(date) == DayTypeWorkday
}
