package calendar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInstant is returned when an event carries a time value that
	// is not a real point in time. The generator never substitutes a default.
	ErrInvalidInstant = errors.New("invalid instant")
	// ErrNoEvents is returned when a combined document is requested for an
	// empty event list.
	ErrNoEvents = errors.New("no events to assemble")
)

// CompositionError reports a failure while building a single VEVENT block.
type CompositionError struct {
	// Suffix identifies the event within the request, e.g. "Deadline" or
	// "Reminder-1Day".
	Suffix string
	Err    error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose event %s: %v", e.Suffix, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

// DocumentAssemblyError wraps the composition errors encountered while
// assembling a combined document. Combined assembly is all-or-nothing: if any
// event fails, no document is produced.
type DocumentAssemblyError struct {
	Errs []error
}

func (e *DocumentAssemblyError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return "assemble document: " + strings.Join(msgs, "; ")
}

func (e *DocumentAssemblyError) Unwrap() []error {
	return e.Errs
}
