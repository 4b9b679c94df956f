package mineru

import (
	"errors"
	"fmt"
	"time"
)

// ErrInterrupted is returned when the run was cancelled (SIGINT/SIGTERM)
// while the child was running; the child has been killed.
var ErrInterrupted = errors.New("interrupted")

// ExitError reports that the tool ran but exited unsuccessfully.
type ExitError struct {
	Code  int    // -1 when the child was terminated by a signal
	State string // process state, e.g. "signal: segmentation fault"
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return "terminated: " + e.State
	}
	return fmt.Sprintf("nonzero exit code %d", e.Code)
}

// TimeoutError reports that the job exceeded its wall-clock budget and the
// child's process group was killed.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return "timeout after " + formatTimeout(e.After)
}

// InvocationError reports that the tool could not be launched at all
// (missing executable, permission denied, log file not creatable).
type InvocationError struct {
	Op  string
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a [TimeoutError].
func IsTimeout(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

// ExitCode extracts the exit code from an [ExitError]; ok is false otherwise.
func ExitCode(err error) (code int, ok bool) {
	var e *ExitError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// formatTimeout prints whole seconds as "600s" and anything finer with
// time.Duration's own format.
func formatTimeout(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	return d.String()
}
