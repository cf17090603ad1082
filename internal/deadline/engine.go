package deadline

import (
	"fmt"

	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/calendar"
	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/interval"
	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
	"go.uber.org/zap"
)

// Engine computes statutory processing time against a working-day calendar
type Engine struct {
	calendar calendar.Calendar
	logger   *zap.Logger
}

// NewEngine creates a new engine. The calendar is consulted on every call,
// so a calendar that finishes loading later is picked up by the next call.
func NewEngine(cal calendar.Calendar, logger *zap.Logger) *Engine {
	return &Engine{
		calendar: cal,
		logger:   logger,
	}
}

// Calculate validates the request and computes the result. Validation
// failures are returned as *ValidationError and produce no result.
func (e *Engine) Calculate(req Request) (*Result, error) {
	if err := validate(req); err != nil {
		e.logger.Debug("Calculation rejected", zap.Error(err))
		return nil, err
	}

	result := &Result{
		Trigger:         req.Trigger,
		Decision:        req.Decision,
		ApplicationType: req.Type,
		BaseDays:        req.Type.BaseDays(),
		ExtensionDays:   sumExtensions(req.Extensions),
	}
	result.MaxDays = result.BaseDays + result.ExtensionDays

	span := interval.Interval{Start: req.Trigger, End: req.Decision}

	// 1. Nothing to count when the whole span is non-working
	if !e.calendar.IsWorkingDay(req.Trigger) &&
		interval.CountWorkingDays(e.calendar, span, interval.IncludeStart).WorkingDays == 0 {
		result.Day0 = req.Trigger
		result.AllNonWorking = true
		result.DaysRemaining = result.MaxDays
		result.Notes = append(result.Notes, fmt.Sprintf(
			"Every day from %s to %s is a non-working day, so no working days have elapsed.",
			req.Trigger, req.Decision))
		e.logger.Debug("All days non-working",
			zap.Stringer("trigger", req.Trigger),
			zap.Stringer("decision", req.Decision))
		return result, nil
	}

	// 2. Day 0
	day0, reason := e.adjustTrigger(req.Trigger, req.Decision)
	result.Day0 = day0
	if day0 != req.Trigger {
		result.Day0Adjusted = true
		result.Day0Reason = reason
		result.Notes = append(result.Notes, fmt.Sprintf(
			"Trigger date %s is a %s; Day 0 moves to the next working day, %s.",
			req.Trigger, reason.Describe(), day0))
	}

	// 3. Elapsed working days, counted from the day after Day 0
	elapsedRange := interval.Interval{Start: day0, End: req.Decision}
	elapsed := interval.CountWorkingDays(e.calendar, elapsedRange, interval.SkipStart)
	result.ElapsedWorkingDays = elapsed.WorkingDays

	if first := day0.AddDays(1); !req.Decision.Before(first) {
		result.Stats = Stats{
			CalendarDays: first.DaysUntil(req.Decision) + 1,
			WeekendDays:  elapsed.Weekends,
			HolidayDays:  elapsed.Holidays,
		}
	}

	// 4. Hold periods: clamp to [Day 0, decision], then merge
	clamped := make([]interval.Interval, 0, len(req.Holds))
	for _, hold := range req.Holds {
		if !hold.Complete() {
			continue
		}
		raw := interval.Interval{Start: hold.Start, End: hold.End}
		iv, ok := interval.Clamp(raw, elapsedRange)
		if !ok {
			e.logger.Debug("Hold period outside counted range, dropped",
				zap.String("hold_id", hold.ID),
				zap.Stringer("range", raw))
			continue
		}

		clamped = append(clamped, iv)
		result.Holds = append(result.Holds, HoldBreakdown{
			ID:           hold.ID,
			Type:         hold.Type,
			Start:        hold.Start,
			End:          hold.End,
			ClampedStart: iv.Start,
			ClampedEnd:   iv.End,
			Truncated:    iv != raw,
			WorkingDays:  interval.CountWorkingDays(e.calendar, iv, interval.IncludeStart).WorkingDays,
		})
	}

	result.MergedHolds = interval.Merge(clamped)
	result.RawHoldDays = interval.SumWorkingDays(e.calendar, result.MergedHolds, interval.IncludeStart)

	// 5. Hold days can never exceed elapsed days
	result.HoldDays = result.RawHoldDays
	if result.HoldDays > result.ElapsedWorkingDays {
		result.HoldDays = result.ElapsedWorkingDays
		result.HoldClamped = true
		result.Notes = append(result.Notes, fmt.Sprintf(
			"Hold periods cover %d working days but only %d have elapsed; hold days are capped at %d.",
			result.RawHoldDays, result.ElapsedWorkingDays, result.HoldDays))
	}

	// 6. Derived totals
	result.FinalDays = max(0, result.ElapsedWorkingDays-result.HoldDays)
	result.IsOvertime = result.FinalDays > result.MaxDays
	result.DaysRemaining = max(0, result.MaxDays-result.FinalDays)
	result.DaysOver = max(0, result.FinalDays-result.MaxDays)

	e.logger.Debug("Calculation complete",
		zap.Stringer("day0", result.Day0),
		zap.Int("elapsed", result.ElapsedWorkingDays),
		zap.Int("hold_days", result.HoldDays),
		zap.Int("final_days", result.FinalDays),
		zap.Int("max_days", result.MaxDays),
		zap.Bool("overtime", result.IsOvertime))

	return result, nil
}

// adjustTrigger returns the first working day on or after trigger, and the
// classification of trigger when it had to move. The search never passes
// decision; callers have already ruled out an all non-working span.
func (e *Engine) adjustTrigger(trigger, decision dateutil.Date) (dateutil.Date, calendar.DayType) {
	reason := e.calendar.Classify(trigger)
	if reason == calendar.DayTypeWorkday {
		return trigger, reason
	}

	day := trigger
	for !e.calendar.IsWorkingDay(day) && day.Before(decision) {
		day = day.AddDays(1)
	}
	return day, reason
}

func validate(req Request) error {
	switch {
	case req.Trigger.IsZero() && req.Decision.IsZero():
		return newValidationError(FieldTrigger, ErrMissingDates)
	case req.Trigger.IsZero():
		return newValidationError(FieldTrigger, ErrMissingTrigger)
	case req.Decision.IsZero():
		return newValidationError(FieldDecision, ErrMissingDecision)
	case req.Decision.Before(req.Trigger):
		return newValidationError(FieldDecision, ErrDecisionBeforeTrigger)
	}

	// Rules are checked in priority order across all holds, so an
	// out-of-range hold is reported before an inverted one.
	span := interval.Interval{Start: req.Trigger, End: req.Decision}
	holdRules := []struct {
		err    error
		broken func(HoldPeriod) bool
	}{
		{ErrHoldOutOfRange, func(h HoldPeriod) bool { return !(interval.Interval{Start: h.Start, End: h.End}).Within(span) }},
		{ErrHoldInverted, func(h HoldPeriod) bool { return h.End.Before(h.Start) }},
		{ErrUnknownHoldType, func(h HoldPeriod) bool { return !h.Type.Valid() }},
	}
	for _, rule := range holdRules {
		for i, hold := range req.Holds {
			if hold.Complete() && rule.broken(hold) {
				return newHoldError(i, hold, rule.err)
			}
		}
	}

	if !req.Type.Valid() {
		return newValidationError(FieldApplicationType, ErrUnknownApplicationType)
	}

	return nil
}

func sumExtensions(exts []Extension) int {
	total := 0
	for _, ext := range exts {
		total += ext.Value()
	}
	return total
}
