package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/Camier/MinerOUI/internal/config"
	"github.com/Camier/MinerOUI/internal/display"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/Camier/MinerOUI/internal/mineru"
	"github.com/Camier/MinerOUI/internal/stats"
)

// Job processes one work item to a terminal Outcome. It must not return
// errors out of band: every problem is a Failed outcome.
type Job interface {
	Run(ctx context.Context, item WorkItem) Outcome
}

// Runner is the production Job: skip check, one tool invocation, and
// classification of the result.
type Runner struct {
	cfg *config.Config
	log *logging.Logger
	now func() time.Time
}

// NewRunner returns a Runner for cfg.
func NewRunner(cfg *config.Config, log *logging.Logger) *Runner {
	return &Runner{cfg: cfg, log: log, now: time.Now}
}

// Run processes item. An existing artifact short-circuits to Skipped without
// spawning anything; otherwise the tool runs once under the configured
// timeout and its exit status decides Processed or Failed.
func (r *Runner) Run(ctx context.Context, item WorkItem) Outcome {
	if _, err := os.Stat(item.ArtifactPath); err == nil {
		return Outcome{Item: item, Kind: stats.Skipped}
	}

	r.log.Info("Processing: %s", item.Name)
	if fi, err := os.Stat(item.Path); err == nil {
		r.log.Debug("  %s (%s) -> %s", item.Path, display.FormatBytes(fi.Size()), item.OutputDir)
	}

	res := mineru.Execute(ctx, mineru.Invocation{
		Args:    mineru.Build(r.cfg.Executable, item.Path, item.OutputDir, r.cfg.Mode),
		LogPath: item.LogPath,
		Timeout: r.cfg.Timeout,
	})
	if res.Err != nil {
		return Outcome{Item: item, Kind: stats.Failed, Duration: res.Duration, Err: res.Err, At: r.now()}
	}

	if _, err := os.Stat(item.ArtifactPath); err != nil {
		r.log.Warn("%s: tool exited 0 but %s is missing; it will be retried next run", item.Name, item.ArtifactPath)
	}
	return Outcome{Item: item, Kind: stats.Processed, Duration: res.Duration}
}
