package mineru

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait lingers after the kill before giving up on
// the child's I/O.
const waitDelay = 5 * time.Second

// Invocation is one conversion run.
type Invocation struct {
	Args    []string      // argv; Args[0] is the executable
	LogPath string        // stdout+stderr destination, truncated first
	Timeout time.Duration // hard wall-clock budget
}

// ExecResult holds the outcome of a single tool invocation.
type ExecResult struct {
	Duration time.Duration
	Err      error // nil on exit status 0
}

// Execute runs inv and blocks until the child exits, the timeout fires, or
// ctx is cancelled. On timeout or cancellation the whole process group is
// killed, so helpers the tool spawned do not outlive the job.
func Execute(ctx context.Context, inv Invocation) ExecResult {
	start := time.Now()
	if len(inv.Args) == 0 {
		return ExecResult{Err: &InvocationError{Op: "start", Err: errors.New("empty command")}}
	}

	logFile, err := os.Create(inv.LogPath)
	if err != nil {
		return ExecResult{Err: &InvocationError{Op: "create log", Err: err}}
	}
	defer logFile.Close()

	runCtx, cancel := context.WithTimeout(ctx, inv.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, inv.Args[0], inv.Args[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay

	err = cmd.Run()
	return ExecResult{
		Duration: time.Since(start),
		Err:      classify(ctx, runCtx, err, inv.Timeout),
	}
}

// classify maps the Run error into the package taxonomy. Context state is
// checked first: a killed child reports "signal: killed", which says nothing
// about why it was killed.
func classify(parent, runCtx context.Context, err error, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if parent.Err() != nil {
		return ErrInterrupted
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{After: timeout}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), State: exitErr.ProcessState.String()}
	}
	return &InvocationError{Op: "start", Err: err}
}
