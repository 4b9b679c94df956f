// Package check provides system diagnostics (the check command) and the
// pre-run dependency validation (CheckDeps) for the conversion tool and the
// input/output directories.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Camier/MinerOUI/internal/config"
	"github.com/Camier/MinerOUI/internal/mineru"
	"github.com/Camier/MinerOUI/internal/pipeline"
)

// Sentinel errors returned by CheckDeps and the individual checks.
var (
	ErrExecutableNotFound = errors.New("conversion tool not found")
	ErrInputUnreadable    = errors.New("input directory not readable")
	ErrOutputNotWritable  = errors.New("output base not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the check command: tool resolution and version, input
// readability with a match count, and output writability. Paths that are not
// configured are reported and skipped. It reports whether every performed
// check passed.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkExecutable(ctx, cfg, log)
	if cfg.InputDir == "" {
		log.Warn("Input directory not set; skipping input check")
	} else if !checkInput(cfg, log) {
		ok = false
	}
	if cfg.OutputBase == "" {
		log.Warn("Output base not set; skipping output check")
	} else if !checkOutput(cfg, log) {
		ok = false
	}
	return ok
}

// checkExecutable resolves the tool and logs its version string.
func checkExecutable(ctx context.Context, cfg *config.Config, log Logger) bool {
	path, err := mineru.LookPath(cfg.Executable)
	if err != nil {
		log.Error("%s not found: %v", cfg.Executable, err)
		return false
	}
	log.Success("Tool: %s", path)

	version, err := mineru.Version(ctx, path)
	if err != nil {
		log.Warn("%s found but --version failed: %v", cfg.Executable, err)
		return true
	}
	log.Success("Version: %s", version)
	return true
}

// checkInput verifies the input root can be walked and counts matches.
func checkInput(cfg *config.Config, log Logger) bool {
	files, err := pipeline.Discover(cfg.InputDir, cfg.Extension)
	if err != nil {
		log.Error("Cannot read input %s: %v", cfg.InputDir, err)
		return false
	}
	if len(files) == 0 {
		log.Warn("Input %s: no %s files found", cfg.InputDir, cfg.Extension)
		return true
	}
	log.Success("Input %s: %d %s files", cfg.InputDir, len(files), cfg.Extension)
	return true
}

// checkOutput creates the output base if needed and probes it with a
// throwaway file.
func checkOutput(cfg *config.Config, log Logger) bool {
	if err := probeWritable(cfg.OutputBase); err != nil {
		log.Error("%v", err)
		return false
	}
	log.Success("Output %s is writable", cfg.OutputBase)
	return true
}

func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
	}
	f, err := os.CreateTemp(dir, ".minerbatch-check-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// CheckDeps is the pre-run validation: the tool must resolve, the input root
// must be a readable directory and the output base must be writable.
// Returns an error wrapping one of the sentinels on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := mineru.LookPath(cfg.Executable); err != nil {
		return fmt.Errorf("%w: %s (%v)", ErrExecutableNotFound, cfg.Executable, err)
	}

	fi, err := os.Stat(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInputUnreadable, cfg.InputDir)
	}
	d, err := os.Open(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	_ = d.Close()

	return probeWritable(cfg.OutputBase)
}
