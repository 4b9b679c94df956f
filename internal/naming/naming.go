// Package naming derives the stable short names used for per-item output
// directories, log files and failed copies, and resolves collisions between
// inputs from different subdirectories that share a file stem.
package naming

import (
	"path/filepath"
	"strings"
)

// ShortName returns the file stem of path: "/in/ch1/Thesis.pdf" -> "Thesis".
func ShortName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
