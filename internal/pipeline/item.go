package pipeline

import (
	"os"
	"path/filepath"

	"github.com/Camier/MinerOUI/internal/naming"
)

// Output layout under the output base.
const (
	processedDirName = "processed"
	failedDirName    = "failed"
	logsDirName      = "logs"
	statsDirName     = "stats"
	statsFileName    = "processing_stats.json"
)

// Layout resolves the fixed directory structure under an output base.
type Layout struct {
	OutputBase  string
	ArtifactExt string // without the leading dot, e.g. "md"
}

func (l Layout) ProcessedDir() string { return filepath.Join(l.OutputBase, processedDirName) }
func (l Layout) FailedDir() string    { return filepath.Join(l.OutputBase, failedDirName) }
func (l Layout) LogsDir() string      { return filepath.Join(l.OutputBase, logsDirName) }
func (l Layout) StatsDir() string     { return filepath.Join(l.OutputBase, statsDirName) }
func (l Layout) StatsFile() string    { return filepath.Join(l.StatsDir(), statsFileName) }

// Prepare creates processed/, failed/, logs/ and stats/.
func (l Layout) Prepare() error {
	for _, dir := range []string{l.ProcessedDir(), l.FailedDir(), l.LogsDir(), l.StatsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// WorkItem is one input file and every path derived from it. Immutable once
// built.
type WorkItem struct {
	Path         string // input file
	Name         string // collision-free short name
	OutputDir    string // processed/<name>
	LogPath      string // logs/<name>.log
	ArtifactPath string // processed/<name>/<name>.<artifact_ext>
	FailedPath   string // failed/<name><input_ext>
}

// Item derives the paths for input under name.
func (l Layout) Item(input, name string) WorkItem {
	outDir := filepath.Join(l.ProcessedDir(), name)
	return WorkItem{
		Path:         input,
		Name:         name,
		OutputDir:    outDir,
		LogPath:      filepath.Join(l.LogsDir(), name+".log"),
		ArtifactPath: filepath.Join(outDir, name+"."+l.ArtifactExt),
		FailedPath:   filepath.Join(l.FailedDir(), name+filepath.Ext(input)),
	}
}

// BuildItems turns discovered paths into work items. Paths must be in
// discovery order: the first input with a given stem keeps the plain name,
// later ones get " - dupN".
func BuildItems(paths []string, layout Layout) []WorkItem {
	resolver := naming.NewCollisionResolver()
	items := make([]WorkItem, 0, len(paths))
	for _, p := range paths {
		name := resolver.Resolve(p, naming.ShortName(p))
		items = append(items, layout.Item(p, name))
	}
	return items
}
