//go:build unix

package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Camier/MinerOUI/internal/config"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeTool behaves like the converter: it writes <out>/<name>.md where name
// is the output directory's base name. Names starting with "fail" exit 1,
// names starting with "slow" hang. Every invocation appends a line to
// $FAKE_TOOL_CALLS when set.
const fakeTool = `#!/bin/sh
out="$4"
name=$(basename "$out")
if [ -n "$FAKE_TOOL_CALLS" ]; then echo "$name" >> "$FAKE_TOOL_CALLS"; fi
echo "converting $2 in mode $6"
case "$name" in
  fail*) echo "layout model crashed" >&2; exit 1 ;;
  slow*) sleep 30 ;;
esac
mkdir -p "$out"
echo "# $name" > "$out/$name.md"
`

type fixture struct {
	cfg   *config.Config
	in    string
	out   string
	calls string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	tool := filepath.Join(root, "magic-pdf")
	require.NoError(t, os.WriteFile(tool, []byte(fakeTool), 0o755))

	calls := filepath.Join(root, "calls.txt")
	t.Setenv("FAKE_TOOL_CALLS", calls)

	cfg := config.DefaultConfig()
	cfg.InputDir = filepath.Join(root, "in")
	cfg.OutputBase = filepath.Join(root, "out")
	cfg.Executable = tool
	cfg.Timeout = 10 * time.Second
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))

	return &fixture{cfg: &cfg, in: cfg.InputDir, out: cfg.OutputBase, calls: calls}
}

// add creates an input file at a path relative to the input root.
func (f *fixture) add(t *testing.T, rel string) string {
	t.Helper()
	path := filepath.Join(f.in, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 "+rel), 0o644))
	return path
}

// callCount returns how many times the fake tool was spawned.
func (f *fixture) callCount(t *testing.T) int {
	t.Helper()
	data, err := os.ReadFile(f.calls)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(strings.Fields(string(data)))
}

func quietLogger() *logging.Logger {
	return logging.New(io.Discard, io.Discard, false)
}
