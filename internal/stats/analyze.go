package stats

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Camier/MinerOUI/internal/display"
	"github.com/Camier/MinerOUI/internal/logging"
)

// iqrBounds holds the IQR-based thresholds for slow-job classification.
// Only the high side matters: a job finishing fast is never a problem.
type iqrBounds struct {
	q1, q3    float64
	outlierHi float64 // Q3 + 1.5*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeBounds(sorted []float64) iqrBounds {
	if len(sorted) < 4 {
		return iqrBounds{}
	}
	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1
	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierHi: q3 + 1.5*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a duration.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid {
		return ""
	}
	if v > b.extremeHi {
		return "extreme"
	}
	if v > b.outlierHi {
		return "outlier"
	}
	return ""
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// DurationReport summarizes the processing_times of a run.
type DurationReport struct {
	Count              int
	Min, Max, Mean     float64
	P50, P90, P99      float64
	Q1, Q3             float64
	OutlierAbove       float64 // valid only when HasIQR
	ExtremeAbove       float64
	HasIQR             bool
	Outliers, Extremes []float64 // descending
}

// AnalyzeDurations computes percentiles and IQR slow-job outliers. Fewer
// than four samples, or a zero IQR, leave HasIQR false.
func AnalyzeDurations(times []float64) DurationReport {
	r := DurationReport{Count: len(times)}
	if len(times) == 0 {
		return r
	}

	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	r.Min = sorted[0]
	r.Max = sorted[len(sorted)-1]
	r.Mean = sum / float64(len(sorted))
	r.P50 = percentile(sorted, 50)
	r.P90 = percentile(sorted, 90)
	r.P99 = percentile(sorted, 99)

	b := computeBounds(sorted)
	if !b.valid {
		return r
	}
	r.HasIQR = true
	r.Q1, r.Q3 = b.q1, b.q3
	r.OutlierAbove, r.ExtremeAbove = b.outlierHi, b.extremeHi
	for i := len(sorted) - 1; i >= 0; i-- {
		switch b.classify(sorted[i]) {
		case "extreme":
			r.Extremes = append(r.Extremes, sorted[i])
		case "outlier":
			r.Outliers = append(r.Outliers, sorted[i])
		}
	}
	return r
}

// PrintReport writes the persisted summary of a run: counts, timing
// distribution and a failure table.
func PrintReport(w io.Writer, log *logging.Logger, s RunStatistics) {
	log.Info("Run %s (%d workers)", s.RunID, s.Workers)
	end := "unfinished"
	if s.EndTime != nil {
		end = s.EndTime.Format("2006-01-02 15:04:05")
	}
	log.Info("  Started: %s, ended: %s", s.StartTime.Format("2006-01-02 15:04:05"), end)
	if s.Interrupted {
		log.Warn("  Run was interrupted")
	}
	log.Info("  Total %d: %d processed, %d failed, %d skipped", s.TotalFiles, s.Processed, s.Failed, s.Skipped)

	r := AnalyzeDurations(s.ProcessingTimes)
	if r.Count > 0 {
		log.Info("  Durations: min %s, p50 %s, p90 %s, p99 %s, max %s (mean %s)",
			display.FormatSeconds(r.Min), display.FormatSeconds(r.P50), display.FormatSeconds(r.P90),
			display.FormatSeconds(r.P99), display.FormatSeconds(r.Max), display.FormatSeconds(r.Mean))
	}
	if r.HasIQR {
		log.Info("  Duration IQR: %s – %s (slow > %s)",
			display.FormatSeconds(r.Q1), display.FormatSeconds(r.Q3), display.FormatSeconds(r.OutlierAbove))
		switch {
		case len(r.Extremes) > 0:
			log.Error("  %d extreme slow job(s) [!]: %s", len(r.Extremes), joinSeconds(r.Extremes))
			if len(r.Outliers) > 0 {
				log.Warn("  %d slow job(s) [*]: %s", len(r.Outliers), joinSeconds(r.Outliers))
			}
		case len(r.Outliers) > 0:
			log.Warn("  %d slow job(s) [*]: %s", len(r.Outliers), joinSeconds(r.Outliers))
		default:
			log.Success("  No slow outliers detected")
		}
	}

	if len(s.Errors) > 0 {
		fmt.Fprintln(w)
		printFailureTable(w, s.Errors)
	}
}

func joinSeconds(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = display.FormatSeconds(v)
	}
	return strings.Join(parts, ", ")
}

// printFailureTable prints one row per failure record. The reason column is
// padded before coloring so escape bytes do not skew alignment.
func printFailureTable(w io.Writer, errs []FailureRecord) {
	nameW := len("File")
	for _, e := range errs {
		if n := len(filepath.Base(e.File)); n > nameW {
			nameW = n
		}
	}
	if nameW > 50 {
		nameW = 50
	}

	header := fmt.Sprintf("  %-19s  %-*s  %s", "Time", nameW, "File", "Error")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", len(header)-2+20))

	for _, e := range errs {
		name := filepath.Base(e.File)
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}
		fmt.Fprintf(w, "  %-19s  %-*s  %s%s%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), nameW, name, logging.Red, e.Error, logging.NC)
	}
	fmt.Fprintln(w)
}
