// Package interval provides arithmetic on closed ranges of calendar days:
// working-day counting, clamping to bounds and merging of overlapping or
// touching ranges. All functions return new values and never modify their
// arguments.
package interval

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/calendar"
	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
)

var (
	// ErrInverted is returned when an interval ends before it starts
	ErrInverted = errors.New("interval ends before it starts")

	// ErrUnsetBound is returned when either bound is the zero date
	ErrUnsetBound = errors.New("interval bound is not set")
)

// Interval is the closed range [Start, End]
type Interval struct {
	Start dateutil.Date `json:"start"`
	End   dateutil.Date `json:"end"`
}

// New validates and builds an interval
func New(start, end dateutil.Date) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, ErrUnsetBound
	}
	if end.Before(start) {
		return Interval{}, fmt.Errorf("%w: %s > %s", ErrInverted, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Contains returns true if the date is within [Start, End]
func (iv Interval) Contains(d dateutil.Date) bool {
	return !d.Before(iv.Start) && !d.After(iv.End)
}

// Within returns true if iv lies entirely inside bounds
func (iv Interval) Within(bounds Interval) bool {
	return bounds.Contains(iv.Start) && bounds.Contains(iv.End)
}

// CalendarDays returns the number of days in the range, both ends included
func (iv Interval) CalendarDays() int {
	return iv.Start.DaysUntil(iv.End) + 1
}

func (iv Interval) String() string {
	return "[" + iv.Start.String() + ", " + iv.End.String() + "]"
}

// StartPolicy selects the day-counting convention for an interval
type StartPolicy int

const (
	// IncludeStart counts both ends, as for clock-stop periods that run
	// "starting with the date of" an event
	IncludeStart StartPolicy = iota
	// SkipStart leaves the first day out, as for elapsed time that runs
	// from the day after the trigger
	SkipStart
)

func (p StartPolicy) String() string {
	if p == SkipStart {
		return "skip-start"
	}
	return "include-start"
}

// Counts tallies the days of a range by classification. Holidays covers
// every non-working day that is not a weekend: listed holidays and the
// seasonal blackout.
type Counts struct {
	WorkingDays int `json:"working_days"`
	Weekends    int `json:"weekend_days"`
	Holidays    int `json:"holiday_days"`
}

// Total returns the number of days counted
func (c Counts) Total() int {
	return c.WorkingDays + c.Weekends + c.Holidays
}

// CountWorkingDays walks the interval and classifies every day
func CountWorkingDays(cal calendar.Calendar, iv Interval, policy StartPolicy) Counts {
	var counts Counts

	from := iv.Start
	if policy == SkipStart {
		from = from.AddDays(1)
	}

	for d := from; !d.After(iv.End); d = d.AddDays(1) {
		switch cal.Classify(d) {
		case calendar.DayTypeWorkday:
			counts.WorkingDays++
		case calendar.DayTypeWeekend:
			counts.Weekends++
		default:
			counts.Holidays++
		}
	}

	return counts
}

// SumWorkingDays counts working days over several intervals independently
func SumWorkingDays(cal calendar.Calendar, ivs []Interval, policy StartPolicy) int {
	total := 0
	for _, iv := range ivs {
		total += CountWorkingDays(cal, iv, policy).WorkingDays
	}
	return total
}

// Clamp intersects iv with bounds. The second result is false when the two
// ranges do not overlap.
func Clamp(iv, bounds Interval) (Interval, bool) {
	start := dateutil.MaxDate(iv.Start, bounds.Start)
	end := dateutil.MinDate(iv.End, bounds.End)
	if end.Before(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Merge sorts intervals by start and joins any that overlap or touch. Two
// intervals touch when the next one starts no later than the day after the
// current one ends, so a shared boundary day is only counted once.
func Merge(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		last := merged[len(merged)-1]
		if !next.Start.After(last.End.AddDays(1)) {
			merged[len(merged)-1] = Interval{
				Start: last.Start,
				End:   dateutil.MaxDate(last.End, next.End),
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}
