// Package stats accumulates per-run statistics and persists them.
//
// A [Recorder] is fed one [Result] per work item by the scheduler's reducer
// goroutine and read concurrently by the status endpoint via Snapshot. On
// Finalize it stamps the end time, computes the average duration, checks
// processed+failed+skipped against the discovered total, writes
// stats/processing_stats.json atomically and prints the summary. Load and
// [ValidateJSON] read a persisted summary back for the report command.
package stats
