package stats

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/Camier/MinerOUI/internal/fsx"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/google/uuid"
)

// Kind is the terminal state of one work item.
type Kind int

const (
	Processed Kind = iota
	Skipped
	Failed
)

func (k Kind) String() string {
	switch k {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what the recorder needs to know about one finished item.
type Result struct {
	File     string
	Kind     Kind
	Duration time.Duration // zero for Skipped
	Reason   string        // Failed only
	At       time.Time     // Failed only; defaults to the recorder clock
}

// FailureRecord is one entry of the persisted errors list.
type FailureRecord struct {
	File      string    `json:"file"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// RunStatistics is the persisted run summary.
type RunStatistics struct {
	RunID                 string          `json:"run_id"`
	StartTime             time.Time       `json:"start_time"`
	EndTime               *time.Time      `json:"end_time,omitempty"`
	TotalFiles            int             `json:"total_files"`
	Processed             int             `json:"processed"`
	Failed                int             `json:"failed"`
	Skipped               int             `json:"skipped"`
	ProcessingTimes       []float64       `json:"processing_times"`
	Errors                []FailureRecord `json:"errors"`
	AverageProcessingTime *float64        `json:"average_processing_time,omitempty"`
	Workers               int             `json:"workers"`
	Interrupted           bool            `json:"interrupted"`
}

// Done returns processed + failed + skipped.
func (s RunStatistics) Done() int {
	return s.Processed + s.Failed + s.Skipped
}

// Locations are the output paths named in the summary.
type Locations struct {
	StatsFile string
	LogsDir   string
	FailedDir string
}

// Recorder owns a RunStatistics for the lifetime of one run.
type Recorder struct {
	mu    sync.Mutex
	stats RunStatistics

	loc   Locations
	log   *logging.Logger
	clock func() time.Time

	once        sync.Once
	finalizeErr error
}

// NewRecorder starts a run: a fresh uuid run id and the start time are
// stamped immediately.
func NewRecorder(loc Locations, workers int, log *logging.Logger) *Recorder {
	return newRecorder(loc, workers, log, time.Now)
}

func newRecorder(loc Locations, workers int, log *logging.Logger, clock func() time.Time) *Recorder {
	return &Recorder{
		stats: RunStatistics{
			RunID:           uuid.NewString(),
			StartTime:       clock(),
			ProcessingTimes: []float64{},
			Errors:          []FailureRecord{},
			Workers:         workers,
		},
		loc:   loc,
		log:   log,
		clock: clock,
	}
}

// SetTotal records the number of discovered items.
func (r *Recorder) SetTotal(n int) {
	r.mu.Lock()
	r.stats.TotalFiles = n
	r.mu.Unlock()
}

// MarkInterrupted flags the run as cut short by a signal.
func (r *Recorder) MarkInterrupted() {
	r.mu.Lock()
	r.stats.Interrupted = true
	r.mu.Unlock()
}

// Record folds one item result into the statistics.
func (r *Recorder) Record(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch res.Kind {
	case Processed:
		r.stats.Processed++
		r.stats.ProcessingTimes = append(r.stats.ProcessingTimes, res.Duration.Seconds())
	case Skipped:
		r.stats.Skipped++
	case Failed:
		at := res.At
		if at.IsZero() {
			at = r.clock()
		}
		r.stats.Failed++
		r.stats.Errors = append(r.stats.Errors, FailureRecord{
			File:      res.File,
			Error:     res.Reason,
			Timestamp: at,
		})
	}
}

// Snapshot returns a deep copy safe to serialize while recording continues.
func (r *Recorder) Snapshot() RunStatistics {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.stats
	s.ProcessingTimes = append([]float64{}, r.stats.ProcessingTimes...)
	s.Errors = append([]FailureRecord{}, r.stats.Errors...)
	if r.stats.EndTime != nil {
		end := *r.stats.EndTime
		s.EndTime = &end
	}
	if r.stats.AverageProcessingTime != nil {
		avg := *r.stats.AverageProcessingTime
		s.AverageProcessingTime = &avg
	}
	return s
}

// Finalize stamps the end time, checks the count invariant, persists the
// summary and prints it. Only the first call does any work; later calls
// return the first call's error. The file is written even when the
// invariant does not hold, and the returned error then includes an
// [InvariantError].
func (r *Recorder) Finalize() error {
	r.once.Do(func() {
		r.finalizeErr = r.finalize()
	})
	return r.finalizeErr
}

func (r *Recorder) finalize() error {
	r.mu.Lock()
	end := r.clock()
	r.stats.EndTime = &end
	if n := len(r.stats.ProcessingTimes); n > 0 {
		var sum float64
		for _, d := range r.stats.ProcessingTimes {
			sum += d
		}
		avg := sum / float64(n)
		r.stats.AverageProcessingTime = &avg
	}
	r.mu.Unlock()

	snap := r.Snapshot()
	invErr := checkInvariant(snap)

	var saveErr error
	if r.loc.StatsFile != "" {
		saveErr = Save(r.loc.StatsFile, snap)
	}

	if r.log != nil {
		PrintSummary(r.log, snap, r.loc)
		if saveErr != nil {
			r.log.Error("Could not write statistics: %v", saveErr)
		}
		if invErr != nil {
			r.log.Error("%v", invErr)
		}
	}
	return errors.Join(invErr, saveErr)
}

func checkInvariant(s RunStatistics) error {
	done := s.Done()
	if done == s.TotalFiles || (s.Interrupted && done < s.TotalFiles) {
		return nil
	}
	return &InvariantError{
		Total:       s.TotalFiles,
		Processed:   s.Processed,
		Failed:      s.Failed,
		Skipped:     s.Skipped,
		Interrupted: s.Interrupted,
	}
}

// Marshal renders s the way it is persisted: two-space indented JSON.
func Marshal(s RunStatistics) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes s to path atomically.
func Save(path string, s RunStatistics) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomic(filepath.Dir(path), filepath.Base(path), data)
}
