package config

// This file implements CLI flag definitions for the cobra commands.
// Flags are grouped into tool, scheduling, display and utility. Values are
// captured into Flags and copied onto a Config only when the user set them,
// so defaults, the config file and the environment hold otherwise.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds parsed flag values until Apply merges them into a Config.
type Flags struct {
	fs *pflag.FlagSet

	configPath  string
	executable  string
	mode        ProcessMode
	extension   string
	artifactExt string
	workers     int
	timeout     string
	statusAddr  string
	verbose     bool
	logFile     string
	forceColor  bool
	noColor     bool
}

// DefineFlags registers every flag on fs and returns the holder to Apply later.
func DefineFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs, mode: ModeAuto}
	defaults := DefaultConfig()

	defineToolFlags(fs, f, defaults)
	defineSchedulingFlags(fs, f, defaults)
	defineDisplayFlags(fs, f)
	fs.StringVar(&f.configPath, "config", "", "YAML config file (flags and MINERBATCH_* env override it)")
	return f
}

// defineToolFlags registers -e/--executable, -m/--mode, --ext, --artifact-ext, -t/--timeout.
func defineToolFlags(fs *pflag.FlagSet, f *Flags, d Config) {
	fs.StringVarP(&f.executable, "executable", "e", d.Executable, "Conversion tool executable (path or name on PATH)")
	fs.VarP(&processModeValue{&f.mode}, "mode", "m", "Processing mode passed to the tool: auto | txt | ocr")
	fs.StringVar(&f.extension, "ext", d.Extension, "Input file extension to discover")
	fs.StringVar(&f.artifactExt, "artifact-ext", d.ArtifactExt, "Extension of the artifact whose presence marks an item done")
	fs.StringVarP(&f.timeout, "timeout", "t", "600", "Per-job timeout (seconds or duration, e.g. 10m)")
}

// defineSchedulingFlags registers -w/--workers and --status-addr.
func defineSchedulingFlags(fs *pflag.FlagSet, f *Flags, d Config) {
	fs.IntVarP(&f.workers, "workers", "w", d.Workers, "Number of concurrent jobs")
	fs.StringVar(&f.statusAddr, "status-addr", "", "Serve live statistics over HTTP on host:port")
}

// defineDisplayFlags registers --color, --no-color, -v/--verbose, -l/--log.
func defineDisplayFlags(fs *pflag.FlagSet, f *Flags) {
	fs.BoolVar(&f.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.StringVarP(&f.logFile, "log", "l", "", "Append logs to file")
}

// ConfigPath returns the --config value (empty when unset).
func (f *Flags) ConfigPath() string { return f.configPath }

// Apply copies every flag the user changed into cfg.
func (f *Flags) Apply(cfg *Config) error {
	changed := f.fs.Changed
	if changed("executable") {
		cfg.Executable = f.executable
	}
	if changed("mode") {
		cfg.Mode = f.mode
	}
	if changed("ext") {
		cfg.Extension = f.extension
	}
	if changed("artifact-ext") {
		cfg.ArtifactExt = f.artifactExt
	}
	if changed("timeout") {
		d, err := ParseTimeout(f.timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("status-addr") {
		cfg.StatusAddr = f.statusAddr
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("log") {
		cfg.LogFile = f.logFile
	}
	if f.noColor {
		cfg.ColorMode = ColorNever
	} else if f.forceColor {
		cfg.ColorMode = ColorAlways
	}
	return nil
}

// ApplyArgs sets InputDir and OutputBase from up to two positional args.
// Missing args leave the file/env values in place.
func ApplyArgs(cfg *Config, args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("expected at most input_dir and output_base, got %d args", len(args))
	}
	if len(args) > 0 {
		cfg.InputDir = NormalizeDirArg(args[0])
	}
	if len(args) > 1 {
		cfg.OutputBase = NormalizeDirArg(args[1])
	}
	return nil
}

// pflag.Value adapter so the ProcessMode enum rejects bad values at parse time.

type processModeValue struct{ p *ProcessMode }

func (m *processModeValue) String() string { return string(*m.p) }
func (m *processModeValue) Type() string   { return "mode" }
func (m *processModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*m.p = ModeAuto
	case "txt":
		*m.p = ModeTxt
	case "ocr":
		*m.p = ModeOCR
	default:
		return fmt.Errorf("invalid mode %q (use 'auto', 'txt' or 'ocr')", s)
	}
	return nil
}
