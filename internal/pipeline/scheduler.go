package pipeline

import (
	"context"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/Camier/MinerOUI/internal/display"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/Camier/MinerOUI/internal/stats"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs work items on a fixed number of workers. Outcomes are
// consumed by a single reducer goroutine in completion order, so the
// recorder and failure handler only ever see one writer.
type Scheduler struct {
	workers  int
	job      Job
	failures *FailureHandler
	rec      *stats.Recorder
	log      *logging.Logger

	inFlight atomic.Int64
}

// NewScheduler returns a Scheduler running job on workers goroutines.
func NewScheduler(workers int, job Job, failures *FailureHandler, rec *stats.Recorder, log *logging.Logger) *Scheduler {
	return &Scheduler{workers: workers, job: job, failures: failures, rec: rec, log: log}
}

// InFlight returns the number of jobs currently running.
func (s *Scheduler) InFlight() int { return int(s.inFlight.Load()) }

// RunAll processes items and returns once every dispatched item has been
// reduced. Cancelling ctx stops dispatch; items never started produce no
// outcome. Running items see the cancellation through their own ctx.
func (s *Scheduler) RunAll(ctx context.Context, items []WorkItem) {
	results := make(chan Outcome, s.workers)
	reduced := make(chan struct{})

	go func() {
		defer close(reduced)
		done := 0
		for o := range results {
			done++
			s.reduce(o, done, len(items))
		}
	}()

	// Plain Group: one item failing must never cancel its siblings.
	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		item := item
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results <- s.runOne(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	<-reduced
}

// runOne runs the job, converting a panic into a Failed outcome.
func (s *Scheduler) runOne(ctx context.Context, item WorkItem) (o Outcome) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			o = Outcome{
				Item: item,
				Kind: stats.Failed,
				Err:  &PanicError{Value: r, Stack: debug.Stack()},
				At:   time.Now(),
			}
		}
	}()
	return s.job.Run(ctx, item)
}

func (s *Scheduler) reduce(o Outcome, done, total int) {
	switch o.Kind {
	case stats.Processed:
		s.rec.Record(o.Result())
		s.log.Success("[%d/%d] %s (%s)", done, total, o.Item.Name, display.FormatSeconds(o.Duration.Seconds()))
	case stats.Skipped:
		s.rec.Record(o.Result())
		s.log.Skip("[%d/%d] Skipping (already processed): %s", done, total, o.Item.Name)
	default:
		s.log.Error("[%d/%d] Failed: %s: %s", done, total, o.Item.Name, o.Reason())
		if pe, ok := o.Err.(*PanicError); ok {
			s.log.Debug("%s", pe.Stack)
		}
		s.failures.OnFailure(o)
	}
}
