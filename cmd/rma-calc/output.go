package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/calendar"
	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/deadline"
)

const rule = "═══════════════════════════════════════════════════════"

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResult(w io.Writer, r *deadline.Result) {
	fmt.Fprintf(w, "\n📊 %s (%s to %s)\n", r.ApplicationType.Label(), r.Trigger, r.Decision)
	fmt.Fprintln(w, rule)

	day0 := r.Day0.String()
	if r.Day0Adjusted {
		day0 += fmt.Sprintf(" (trigger was a %s)", r.Day0Reason.Describe())
	}
	fmt.Fprintf(w, "  Day 0:            %s\n", day0)
	fmt.Fprintf(w, "  Elapsed days:     %d\n", r.ElapsedWorkingDays)
	if r.HoldClamped {
		fmt.Fprintf(w, "  Hold days:        %d (capped from %d)\n", r.HoldDays, r.RawHoldDays)
	} else {
		fmt.Fprintf(w, "  Hold days:        %d\n", r.HoldDays)
	}
	fmt.Fprintf(w, "  Working days:     %d\n", r.FinalDays)
	fmt.Fprintf(w, "  Maximum:          %d (%d base + %d extension)\n", r.MaxDays, r.BaseDays, r.ExtensionDays)

	if r.IsOvertime {
		fmt.Fprintf(w, "  Status:           ⚠️  %d working day(s) over\n", r.DaysOver)
	} else {
		fmt.Fprintf(w, "  Status:           ✅ %d working day(s) remaining\n", r.DaysRemaining)
	}

	if r.Stats.CalendarDays > 0 {
		fmt.Fprintf(w, "\n  Calendar days %d, weekend days %d, holiday days %d\n",
			r.Stats.CalendarDays, r.Stats.WeekendDays, r.Stats.HolidayDays)
	}

	if len(r.Holds) > 0 {
		fmt.Fprintln(w, "\n⏸  Hold periods:")
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "  Type                      | Start      | End        | Days")
		fmt.Fprintln(w, "----------------------------+------------+------------+------")
		for _, h := range r.Holds {
			marker := ""
			if h.Truncated {
				marker = " *"
			}
			fmt.Fprintf(w, "  %-25s | %s | %s | %4d%s\n",
				h.Type.Label(), h.ClampedStart, h.ClampedEnd, h.WorkingDays, marker)
		}
		if len(r.MergedHolds) != len(r.Holds) {
			fmt.Fprintf(w, "  Overlapping holds merged into %d period(s)\n", len(r.MergedHolds))
		}
	}

	if len(r.Notes) > 0 {
		fmt.Fprintln(w)
		for _, note := range r.Notes {
			fmt.Fprintf(w, "  ℹ️  %s\n", note)
		}
	}
}

func writeDays(w io.Writer, days []calendar.DayInfo) {
	for _, d := range days {
		status := "working day"
		if !d.IsWorkday {
			status = "non-working: " + d.Type.Describe()
		}
		fmt.Fprintf(w, "%s %s  %s\n", d.Date, d.Date.Weekday().String()[:3], status)
	}
}

func writeMonth(w io.Writer, info calendar.MonthInfo) {
	fmt.Fprintf(w, "\n📅 %s %d\n", info.Month, info.Year)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Working days:   %d\n", info.WorkDays)
	fmt.Fprintf(w, "  Weekend days:   %d\n", info.Weekends)
	fmt.Fprintf(w, "  Holidays:       %d\n", info.Holidays)
	fmt.Fprintf(w, "  Blackout days:  %d\n", info.Blackouts)

	var nonWorking []calendar.DayInfo
	for _, d := range info.Days {
		if d.Type == calendar.DayTypeHoliday || d.Type == calendar.DayTypeSeasonalBlackout {
			nonWorking = append(nonWorking, d)
		}
	}
	if len(nonWorking) > 0 {
		fmt.Fprintln(w)
		writeDays(w, nonWorking)
	}
}

func writeTypes(w io.Writer) {
	fmt.Fprintln(w, "Application types:")
	for _, t := range deadline.ApplicationTypes() {
		fmt.Fprintf(w, "  %-27s %3d days  %s\n", t, t.BaseDays(), t.Label())
	}
	fmt.Fprintln(w, "\nHold period types:")
	for _, t := range deadline.HoldTypes() {
		fmt.Fprintf(w, "  %-27s %s\n", t, t.Label())
	}
}
