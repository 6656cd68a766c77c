package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/weekplan/internal/logger"
)

// Sentinel errors for the core failure taxonomy. Callers match them with
// errors.Is.
var (
	// ErrNotFound reports an update of or reference to a missing entity id.
	ErrNotFound = stderrors.New("not found")

	// ErrLockedCell reports an attempted mutation of a slot covered by a
	// habit overlay. Habit cells can never be painted or erased.
	ErrLockedCell = stderrors.New("slot is occupied by a fixed habit")

	// ErrNoGoalSelected reports a goal-paint attempt with no active goal.
	ErrNoGoalSelected = stderrors.New("no goal selected")
)

// ValidationError reports malformed user input: bad week/day format,
// non-positive durations, missing required fields. It aborts only the
// requested operation and is surfaced directly as a user-facing message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// CorruptRecordError reports an unparsable persisted payload. The shift
// engine swallows it per-week so one bad grid cannot block a migration; other
// callers surface it.
type CorruptRecordError struct {
	Key string
	Err error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record %q: %v", e.Key, e.Err)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Err
}

// Corrupt wraps a decode failure for the record stored under key.
func Corrupt(key string, err error) error {
	return &CorruptRecordError{Key: key, Err: err}
}

// IsCorrupt reports whether err is a CorruptRecordError.
func IsCorrupt(err error) bool {
	var ce *CorruptRecordError
	return stderrors.As(err, &ce)
}

// Is delegates to the standard library so callers don't need a second import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
