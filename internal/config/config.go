// Package config holds runtime configuration: defaults, the optional YAML
// file, MINERBATCH_* environment overrides, CLI flags, and validation.
// Defaults: 4 workers, 10 minute timeout, magic-pdf in auto mode.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// --- Enum types for validated string fields ---

// ProcessMode is the processing mode passed to the conversion tool via -m.
type ProcessMode string

const (
	ModeAuto ProcessMode = "auto" // Let the tool pick text or OCR per document (default).
	ModeTxt  ProcessMode = "txt"  // Text-layer extraction only.
	ModeOCR  ProcessMode = "ocr"  // Force OCR.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

const (
	// DefaultWorkers balances throughput against GPU memory pressure in the
	// conversion tool; lower it when jobs start failing with OOM.
	DefaultWorkers = 4
	// DefaultTimeout is the per-job wall-clock budget.
	DefaultTimeout = 600 * time.Second
	// MaxWorkers caps --workers.
	MaxWorkers = 64
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then layered with [LoadFile], [ApplyEnv] and [Flags.Apply] before being
// passed (by pointer) to the packages that need it.
type Config struct {
	// Paths (positional args, --input/--output, or config file).
	InputDir   string `yaml:"input_dir" validate:"required_unless=CheckOnly true"`
	OutputBase string `yaml:"output_base" validate:"required_unless=CheckOnly true"`

	// External conversion tool.
	Executable  string        `yaml:"executable" validate:"required"`
	Mode        ProcessMode   `yaml:"mode"`
	Extension   string        `yaml:"extension" validate:"required,startswith=.,excludesall=/\\"`
	ArtifactExt string        `yaml:"artifact_ext" validate:"required,excludesall=/\\"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`

	// Scheduling.
	Workers int `yaml:"workers" validate:"min=1,max=64"`

	// Display and logging.
	Verbose    bool      `yaml:"verbose"`
	ColorMode  ColorMode `yaml:"color"`
	LogFile    string    `yaml:"log_file"`
	StatusAddr string    `yaml:"status_addr" validate:"omitempty,tcp_addr"`

	// CheckOnly is set by the check command; paths become optional.
	CheckOnly bool `yaml:"-"`
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// the file, env and flag layers.
func DefaultConfig() Config {
	return Config{
		Executable:  "magic-pdf",
		Mode:        ModeAuto,
		Extension:   ".pdf",
		ArtifactExt: "md",
		Timeout:     DefaultTimeout,
		Workers:     DefaultWorkers,
		ColorMode:   ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and struct constraints. Extension and
// ArtifactExt are canonicalized first (".PDF" -> ".pdf", ".md" -> "md").
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAuto, ModeTxt, ModeOCR:
		// valid
	default:
		return errors.New("invalid mode (use 'auto', 'txt' or 'ocr')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	c.Extension = normalizeExtension(c.Extension)
	c.ArtifactExt = strings.TrimPrefix(strings.TrimSpace(c.ArtifactExt), ".")

	if err := validator.New().Struct(c); err != nil {
		return describeValidation(err)
	}
	return nil
}

// normalizeExtension lowercases ext and ensures a leading dot.
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// describeValidation turns validator field errors into one readable line
// naming the first offending field.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required", "required_unless":
		if fe.Field() == "InputDir" || fe.Field() == "OutputBase" {
			return errors.New("need input_dir and output_base")
		}
		return fmt.Errorf("%s must not be empty", fe.Field())
	case "min", "max":
		return fmt.Errorf("%s must be between 1 and %d (got %v)", fe.Field(), MaxWorkers, fe.Value())
	case "gt":
		return fmt.Errorf("%s must be positive (got %v)", fe.Field(), fe.Value())
	case "tcp_addr":
		return fmt.Errorf("%s must be host:port (got %q)", fe.Field(), fe.Value())
	default:
		return fmt.Errorf("invalid %s %q (%s)", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag())
	}
}

// ValidatePaths ensures the resolved output base is not inside (or equal to)
// the resolved input root; otherwise discovery would pick up the copies under
// failed/ on the next run. Both arguments must be absolute, symlink-resolved
// paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output base must not be inside input directory")
	}
	return nil
}
