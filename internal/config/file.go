package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values; unknown keys are rejected so typos do not
// silently fall back to defaults. Durations accept Go syntax ("10m", "90s").
//
//	input_dir: /home/mik/thesis
//	output_base: /home/mik/MinerU/thesis_output
//	executable: /home/mik/MinerU/mineru_env/bin/magic-pdf
//	workers: 2
//	timeout: 15m
func LoadFile(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.OutputBase = NormalizeDirArg(cfg.OutputBase)
	return nil
}
