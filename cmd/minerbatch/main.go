// Command minerbatch converts a tree of documents with an external
// converter (magic-pdf by default), in parallel, resumably, and with a
// persisted run summary. Subcommands: check (diagnostics) and report
// (inspect a finished run).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// exitError carries a process exit code for a failure that has already been
// logged.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(execute(context.Background(), os.Args[1:]))
}

// execute runs the CLI with args and returns the process exit code.
func execute(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(os.Stderr, "minerbatch: %v\n", err)
		return 1
	}
	return 0
}
