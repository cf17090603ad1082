package calendar

import (
	"sort"

	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
)

// HolidaySet is an immutable set of fixed non-working dates.
// A nil *HolidaySet behaves as an empty set.
type HolidaySet struct {
	dates map[dateutil.Date]struct{}
}

// NewHolidaySet creates a set from the given dates; zero dates are ignored
func NewHolidaySet(dates ...dateutil.Date) *HolidaySet {
	hs := &HolidaySet{dates: make(map[dateutil.Date]struct{}, len(dates))}
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		hs.dates[d] = struct{}{}
	}
	return hs
}

// Contains reports whether the date is a listed holiday
func (hs *HolidaySet) Contains(date dateutil.Date) bool {
	if hs == nil {
		return false
	}
	_, ok := hs.dates[date]
	return ok
}

// Len returns the number of distinct dates in the set
func (hs *HolidaySet) Len() int {
	if hs == nil {
		return 0
	}
	return len(hs.dates)
}

// Dates returns a sorted copy of the set
func (hs *HolidaySet) Dates() []dateutil.Date {
	if hs == nil {
		return nil
	}
	out := make([]dateutil.Date, 0, len(hs.dates))
	for d := range hs.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// Range returns the earliest and latest listed dates
func (hs *HolidaySet) Range() (first, last dateutil.Date, ok bool) {
	dates := hs.Dates()
	if len(dates) == 0 {
		return dateutil.Date{}, dateutil.Date{}, false
	}
	return dates[0], dates[len(dates)-1], true
}
