package stats

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a persisted summary, validating it against the schema first.
func Load(path string) (RunStatistics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunStatistics{}, fmt.Errorf("failed to read statistics: %w", err)
	}
	if err := ValidateJSON(data); err != nil {
		return RunStatistics{}, fmt.Errorf("%s: %w", path, err)
	}
	var s RunStatistics
	if err := json.Unmarshal(data, &s); err != nil {
		return RunStatistics{}, fmt.Errorf("failed to parse statistics: %w", err)
	}
	return s, nil
}
