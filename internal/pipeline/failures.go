package pipeline

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Camier/MinerOUI/internal/fsx"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/Camier/MinerOUI/internal/stats"
)

// FailureHandler records failures and preserves the failed inputs for
// inspection.
type FailureHandler struct {
	rec *stats.Recorder
	log *logging.Logger
}

// NewFailureHandler returns a handler recording into rec.
func NewFailureHandler(rec *stats.Recorder, log *logging.Logger) *FailureHandler {
	return &FailureHandler{rec: rec, log: log}
}

// OnFailure appends the failure record and copies the input to its
// failed/ path unless a copy is already there. A copy problem is logged and
// otherwise ignored.
func (h *FailureHandler) OnFailure(o Outcome) {
	h.rec.Record(o.Result())

	if err := h.preserve(o.Item); err != nil {
		h.log.Warn("%v", err)
	}
}

func (h *FailureHandler) preserve(item WorkItem) error {
	dir, name := filepath.Split(item.FailedPath)
	err := fsx.CopyFileNoOverwrite(item.Path, dir, name)
	switch {
	case err == nil:
		h.log.Debug("  copied %s to %s", item.Path, item.FailedPath)
		return nil
	case errors.Is(err, os.ErrExist):
		h.log.Debug("  %s already preserved", item.FailedPath)
		return nil
	default:
		return &CopyError{Src: item.Path, Dst: item.FailedPath, Err: err}
	}
}
