package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by ApplyEnv. A .env file in the working
// directory is loaded into the process environment by the CLI beforehand.
const (
	EnvInputDir   = "MINERBATCH_INPUT_DIR"
	EnvOutputBase = "MINERBATCH_OUTPUT_BASE"
	EnvExecutable = "MINERBATCH_EXECUTABLE"
	EnvMode       = "MINERBATCH_MODE"
	EnvExtension  = "MINERBATCH_EXT"
	EnvWorkers    = "MINERBATCH_WORKERS"
	EnvTimeout    = "MINERBATCH_TIMEOUT"
	EnvStatusAddr = "MINERBATCH_STATUS_ADDR"
	EnvLogFile    = "MINERBATCH_LOG_FILE"
)

// ApplyEnv overlays non-empty MINERBATCH_* variables onto cfg. getenv is
// usually os.Getenv; tests pass a map lookup.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvInputDir); v != "" {
		cfg.InputDir = NormalizeDirArg(v)
	}
	if v := getenv(EnvOutputBase); v != "" {
		cfg.OutputBase = NormalizeDirArg(v)
	}
	if v := getenv(EnvExecutable); v != "" {
		cfg.Executable = v
	}
	if v := getenv(EnvMode); v != "" {
		cfg.Mode = ProcessMode(strings.ToLower(v))
	}
	if v := getenv(EnvExtension); v != "" {
		cfg.Extension = v
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be a whole number (got %q)", EnvWorkers, v)
		}
		cfg.Workers = n
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := getenv(EnvStatusAddr); v != "" {
		cfg.StatusAddr = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// ParseTimeout accepts a bare number of seconds ("600") or a Go duration
// ("10m", "1m30s").
func ParseTimeout(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid timeout %q (must be positive)", raw)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q (use seconds or a duration like 10m)", raw)
	}
	return d, nil
}
