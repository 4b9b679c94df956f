package pipeline

import (
	"time"

	"github.com/Camier/MinerOUI/internal/stats"
)

// Outcome is the terminal result of one work item.
type Outcome struct {
	Item     WorkItem
	Kind     stats.Kind
	Duration time.Duration // zero for Skipped
	Err      error         // Failed only
	At       time.Time     // when the failure was observed
}

// Reason is the human-readable failure reason, empty unless Failed.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Result converts o for the stats recorder.
func (o Outcome) Result() stats.Result {
	return stats.Result{
		File:     o.Item.Path,
		Kind:     o.Kind,
		Duration: o.Duration,
		Reason:   o.Reason(),
		At:       o.At,
	}
}
