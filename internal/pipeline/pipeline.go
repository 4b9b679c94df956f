package pipeline

import (
	"context"
	"time"

	"github.com/Camier/MinerOUI/internal/config"
	"github.com/Camier/MinerOUI/internal/display"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/Camier/MinerOUI/internal/stats"
)

// estimatePerJob is the rough per-document cost used for the up-front time
// estimate.
const estimatePerJob = 3 * time.Minute

// Pipeline is one batch run over cfg.InputDir.
type Pipeline struct {
	cfg    *config.Config
	log    *logging.Logger
	layout Layout
	rec    *stats.Recorder
	sched  *Scheduler
}

// New wires a pipeline with the production Runner.
func New(cfg *config.Config, log *logging.Logger) *Pipeline {
	return NewWithJob(cfg, log, NewRunner(cfg, log))
}

// NewWithJob wires a pipeline around job.
func NewWithJob(cfg *config.Config, log *logging.Logger, job Job) *Pipeline {
	layout := Layout{OutputBase: cfg.OutputBase, ArtifactExt: cfg.ArtifactExt}
	rec := stats.NewRecorder(stats.Locations{
		StatsFile: layout.StatsFile(),
		LogsDir:   layout.LogsDir(),
		FailedDir: layout.FailedDir(),
	}, cfg.Workers, log)
	return &Pipeline{
		cfg:    cfg,
		log:    log,
		layout: layout,
		rec:    rec,
		sched:  NewScheduler(cfg.Workers, job, NewFailureHandler(rec, log), rec, log),
	}
}

// Snapshot returns the live statistics.
func (p *Pipeline) Snapshot() stats.RunStatistics { return p.rec.Snapshot() }

// InFlight returns the number of jobs currently running.
func (p *Pipeline) InFlight() int { return p.sched.InFlight() }

// Run executes the batch. Once the output layout exists, statistics are
// finalized and persisted exactly once on every path out of Run, including
// discovery failure, interruption and panics. The returned error is a
// [SetupError], [ErrInterrupted], an invariant violation from the recorder,
// or nil; per-item failures are not errors.
func (p *Pipeline) Run(ctx context.Context) (s stats.RunStatistics, err error) {
	if err := p.layout.Prepare(); err != nil {
		return p.rec.Snapshot(), &SetupError{Op: "create output layout", Err: err}
	}

	defer func() {
		if ctx.Err() != nil {
			p.rec.MarkInterrupted()
			if err == nil {
				err = ErrInterrupted
			}
		}
		if ferr := p.rec.Finalize(); ferr != nil && err == nil {
			err = ferr
		}
		s = p.rec.Snapshot()
	}()

	files, err := Discover(p.cfg.InputDir, p.cfg.Extension)
	if err != nil {
		return s, &SetupError{Op: "discover inputs", Err: err}
	}
	items := BuildItems(files, p.layout)
	p.rec.SetTotal(len(items))

	p.log.Info("Found %d %s files to process", len(items), p.cfg.Extension)
	if len(items) == 0 {
		return s, nil
	}
	p.log.Info("Starting parallel processing with %d workers (timeout %s per file)",
		p.cfg.Workers, display.FormatElapsed(p.cfg.Timeout))
	p.log.Info("Estimated time: %s", display.FormatElapsed(display.EstimateBatch(len(items), p.cfg.Workers, estimatePerJob)))

	p.sched.RunAll(ctx, items)

	if ctx.Err() != nil {
		p.log.Warn("Interrupted; in-flight jobs were stopped")
	}
	return s, nil
}
