package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrCalendarDegraded marks a failed holiday load. Calculations continue with
// weekends and the blackout window only.
var ErrCalendarDegraded = errors.New("holiday calendar unavailable")

// DegradedError records why the holiday set could not be loaded
type DegradedError struct {
	Source string
	Err    error
}

func (e *DegradedError) Error() string {
	return fmt.Sprintf("%s: %s: %v (public holidays are not excluded)", ErrCalendarDegraded, e.Source, e.Err)
}

func (e *DegradedError) Unwrap() []error {
	return []error{ErrCalendarDegraded, e.Err}
}

// Loader loads the holiday set once, in the background, and serves
// classifications from whatever has been loaded so far. Before the load
// finishes, or after it fails, the holiday set is empty.
type Loader struct {
	source   Source
	blackout Blackout
	logger   *zap.Logger

	current atomic.Pointer[WorkingDayCalendar]
	once    sync.Once
	done    chan struct{}
	err     error
}

// NewLoader creates a loader that has not started loading yet
func NewLoader(source Source, blackout Blackout, logger *zap.Logger) *Loader {
	l := &Loader{
		source:   source,
		blackout: blackout,
		logger:   logger,
		done:     make(chan struct{}),
	}
	l.current.Store(NewWorkingDayCalendar(nil, blackout))
	return l
}

// Start launches the load; calling it more than once has no effect
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.load(ctx)
	})
}

// Load runs the load synchronously and returns the degraded error, if any
func (l *Loader) Load(ctx context.Context) error {
	l.Start(ctx)
	return l.Wait(ctx)
}

func (l *Loader) load(ctx context.Context) {
	defer close(l.done)

	started := time.Now()
	set, err := l.source.Load(ctx)
	if err != nil {
		l.err = &DegradedError{Source: l.source.Name(), Err: err}
		l.logger.Warn("Holiday calendar failed to load, continuing without public holidays",
			zap.String("source", l.source.Name()),
			zap.Error(err))
		return
	}

	l.current.Store(NewWorkingDayCalendar(set, l.blackout))
	l.logger.Info("Holiday calendar ready",
		zap.String("source", l.source.Name()),
		zap.Int("dates", set.Len()),
		zap.Duration("took", time.Since(started)))
}

// Wait blocks until the load finishes or ctx is done. It returns the
// degraded error when the load failed, or ctx.Err() on cancellation.
func (l *Loader) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether the load has finished, successfully or not
func (l *Loader) Ready() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Err returns the degraded error once the load has failed, nil otherwise
func (l *Loader) Err() error {
	if !l.Ready() {
		return nil
	}
	return l.err
}

// Classify implements Calendar against the latest loaded set
func (l *Loader) Classify(date dateutil.Date) DayType {
	return l.current.Load().Classify(date)
}

// IsWorkingDay implements Calendar against the latest loaded set
func (l *Loader) IsWorkingDay(date dateutil.Date) bool {
	return l.current.Load().IsWorkingDay(date)
}
