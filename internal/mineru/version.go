package mineru

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LookPath resolves executable (an absolute path or a name on PATH) and
// verifies it can be executed.
func LookPath(executable string) (string, error) {
	return exec.LookPath(executable)
}

// Version runs "<executable> --version" and returns the first output line.
// It gives up after 30s; importing the tool's model stack can be slow.
func Version(ctx context.Context, executable string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, executable, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", executable, err)
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(first, '\n'); idx > 0 {
		first = strings.TrimSpace(first[:idx])
	}
	return first, nil
}
