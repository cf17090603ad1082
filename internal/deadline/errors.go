package deadline

import (
	"errors"
	"fmt"
)

// Sentinel validation failures, reachable with errors.Is
var (
	ErrMissingDates           = errors.New("trigger and decision dates are required")
	ErrMissingTrigger         = errors.New("trigger date is required")
	ErrMissingDecision        = errors.New("decision date is required")
	ErrDecisionBeforeTrigger  = errors.New("decision date is before trigger date")
	ErrHoldOutOfRange         = errors.New("hold period is outside the processing period")
	ErrHoldInverted           = errors.New("hold period ends before it starts")
	ErrUnknownHoldType        = errors.New("unknown hold period type")
	ErrUnknownApplicationType = errors.New("unknown application type")
)

// Field names used in ValidationError
const (
	FieldTrigger         = "trigger"
	FieldDecision        = "decision"
	FieldApplicationType = "application_type"
	FieldHolds           = "holds"
)

// ValidationError is a user-correctable input problem. Message is meant to
// be shown to the user as is.
type ValidationError struct {
	Field   string
	HoldID  string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: capitalize(err.Error()),
		Err:     err,
	}
}

func newHoldError(index int, hold HoldPeriod, err error) *ValidationError {
	return &ValidationError{
		Field:  fmt.Sprintf("%s[%d]", FieldHolds, index),
		HoldID: hold.ID,
		Message: fmt.Sprintf("Hold period %d (%s to %s): %s",
			index+1, hold.Start, hold.End, err),
		Err: err,
	}
}

// IsValidationError returns true if err is a user input problem
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
