package stats

import "fmt"

// InvariantError reports that the finished counts do not add up to the
// discovered total. It means an item was lost or double counted.
type InvariantError struct {
	Total       int
	Processed   int
	Failed      int
	Skipped     int
	Interrupted bool
}

func (e *InvariantError) Error() string {
	rel := "=="
	if e.Interrupted {
		rel = "<="
	}
	return fmt.Sprintf("statistics invariant violated: processed(%d) + failed(%d) + skipped(%d) = %d, want %s total(%d)",
		e.Processed, e.Failed, e.Skipped, e.Processed+e.Failed+e.Skipped, rel, e.Total)
}
