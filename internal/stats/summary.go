package stats

import (
	"github.com/Camier/MinerOUI/internal/display"
	"github.com/Camier/MinerOUI/internal/logging"
)

// PrintSummary logs the end-of-run totals and where outputs went.
func PrintSummary(log *logging.Logger, s RunStatistics, loc Locations) {
	log.Info("============================================================")
	if s.Interrupted {
		log.Warn("PROCESSING INTERRUPTED")
	} else {
		log.Info("PROCESSING COMPLETE")
	}
	log.Info("============================================================")
	log.Info("Total files: %d", s.TotalFiles)
	log.Success("Successfully processed: %d", s.Processed)
	if s.Failed > 0 {
		log.Error("Failed: %d", s.Failed)
	} else {
		log.Info("Failed: 0")
	}
	log.Skip("Skipped (already processed): %d", s.Skipped)
	if s.Interrupted {
		log.Warn("Not started: %d", s.TotalFiles-s.Done())
	}
	if s.AverageProcessingTime != nil {
		log.Info("Average processing time: %s per file", display.FormatSeconds(*s.AverageProcessingTime))
	}
	if s.EndTime != nil {
		log.Info("Wall time: %s", display.FormatElapsed(s.EndTime.Sub(s.StartTime)))
	}
	if loc.StatsFile != "" {
		log.Info("Stats saved to: %s", loc.StatsFile)
	}
	if loc.LogsDir != "" {
		log.Info("Logs directory: %s", loc.LogsDir)
	}
	if loc.FailedDir != "" {
		log.Info("Failed inputs copied to: %s", loc.FailedDir)
	}
}
