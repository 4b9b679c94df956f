package main

import (
	"os"
	"path/filepath"

	"github.com/Camier/MinerOUI/internal/config"
)

// loadConfig layers defaults, the --config file, MINERBATCH_* environment,
// changed flags and positional args, then validates.
func loadConfig(flags *config.Flags, args []string, checkOnly bool) (config.Config, error) {
	cfg := config.DefaultConfig()
	if path := flags.ConfigPath(); path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	if err := flags.Apply(&cfg); err != nil {
		return cfg, err
	}
	if err := config.ApplyArgs(&cfg, args); err != nil {
		return cfg, err
	}
	cfg.CheckOnly = checkOnly
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// absPath returns the absolute path with symlinks resolved, for comparing input vs output hierarchy.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
