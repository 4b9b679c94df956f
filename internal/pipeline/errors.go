package pipeline

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned by Run when SIGINT/SIGTERM cut the batch short.
// Statistics have still been written.
var ErrInterrupted = errors.New("run interrupted")

// SetupError is fatal and happens before any job runs: the output layout
// cannot be created or the input root cannot be scanned.
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *SetupError) Unwrap() error { return e.Err }

// CopyError reports that a failed input could not be preserved under
// failed/. It is logged and never aborts the run.
type CopyError struct {
	Src string
	Dst string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("cannot copy %s to %s: %v", e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// PanicError is a runner panic converted into a failure.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }
