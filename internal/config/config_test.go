package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/home/mik/thesis", "/home/mik/thesis"},
		{"single trailing slash", "/home/mik/thesis/", "/home/mik/thesis"},
		{"multiple trailing slashes", "/home/mik/thesis///", "/home/mik/thesis"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.InputDir = "/in"
	cfg.OutputBase = "/out"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "magic-pdf", cfg.Executable)
	assert.Equal(t, ModeAuto, cfg.Mode)
	assert.Equal(t, ".pdf", cfg.Extension)
	assert.Equal(t, "md", cfg.ArtifactExt)
	assert.Equal(t, 600*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
}

func TestValidate_Mode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ProcessMode
		wantErr bool
	}{
		{"auto is valid", ModeAuto, false},
		{"txt is valid", ModeTxt, false},
		{"ocr is valid", ModeOCR, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "layout", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Mode = tt.mode
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestValidate_Workers(t *testing.T) {
	tests := []struct {
		workers int
		wantErr bool
	}{
		{0, true},
		{-1, true},
		{1, false},
		{8, false},
		{MaxWorkers, false},
		{MaxWorkers + 1, true},
	}
	for _, tt := range tests {
		cfg := validConfig()
		cfg.Workers = tt.workers
		err := cfg.Validate()
		assert.Equal(t, tt.wantErr, err != nil, "workers=%d: %v", tt.workers, err)
	}
}

func TestValidate_Timeout(t *testing.T) {
	cfg := validConfig()
	cfg.Timeout = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timeout")
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_dir")

	cfg.InputDir = "/in"
	cfg.OutputBase = "/out"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CheckOnlySkipsPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CanonicalizesExtensions(t *testing.T) {
	cfg := validConfig()
	cfg.Extension = "PDF"
	cfg.ArtifactExt = ".md"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".pdf", cfg.Extension)
	assert.Equal(t, "md", cfg.ArtifactExt)
}

func TestValidate_RejectsSeparatorInExtension(t *testing.T) {
	cfg := validConfig()
	cfg.ArtifactExt = "out/md"
	assert.Error(t, cfg.Validate())
}

func TestValidate_StatusAddr(t *testing.T) {
	cfg := validConfig()
	cfg.StatusAddr = "127.0.0.1:8089"
	assert.NoError(t, cfg.Validate())

	cfg.StatusAddr = "not an address"
	assert.Error(t, cfg.Validate())
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		wantErr bool
	}{
		{"separate directories", "/home/mik/thesis", "/home/mik/MinerU/thesis_output", false},
		{"output equals input", "/data/docs", "/data/docs", true},
		{"output inside input", "/data/docs", "/data/docs/output", true},
		{"output is parent of input", "/data/docs/sub", "/data/docs", false},
		{"similar prefix not nested", "/data/docs", "/data/docs2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ValidatePaths(tt.input, tt.output)
			assert.Equal(t, tt.wantErr, err != nil, "ValidatePaths(%q, %q) = %v", tt.input, tt.output, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	content := `
input_dir: /home/mik/thesis/
output_base: /home/mik/MinerU/thesis_output
executable: /home/mik/MinerU/mineru_env/bin/magic-pdf
workers: 2
timeout: 15m
mode: ocr
`
	path := filepath.Join(t.TempDir(), "minerbatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := DefaultConfig()
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, "/home/mik/thesis", cfg.InputDir)
	assert.Equal(t, "/home/mik/MinerU/thesis_output", cfg.OutputBase)
	assert.Equal(t, "/home/mik/MinerU/mineru_env/bin/magic-pdf", cfg.Executable)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Timeout)
	assert.Equal(t, ModeOCR, cfg.Mode)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, ".pdf", cfg.Extension)
}

func TestLoadFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minerbatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wokers: 3\n"), 0o644))

	cfg := DefaultConfig()
	err := LoadFile(path, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg := DefaultConfig()
	require.NoError(t, LoadFile(path, &cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	err := LoadFile("/nonexistent/minerbatch.yaml", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvInputDir:   "/env/in/",
		EnvOutputBase: "/env/out",
		EnvWorkers:    "8",
		EnvTimeout:    "90",
		EnvMode:       "TXT",
	}
	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg, func(k string) string { return env[k] }))

	assert.Equal(t, "/env/in", cfg.InputDir)
	assert.Equal(t, "/env/out", cfg.OutputBase)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, ModeTxt, cfg.Mode)
	assert.Equal(t, "magic-pdf", cfg.Executable)
}

func TestApplyEnv_BadWorkers(t *testing.T) {
	cfg := DefaultConfig()
	err := ApplyEnv(&cfg, func(k string) string {
		if k == EnvWorkers {
			return "four"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvWorkers)
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"600", 600 * time.Second, false},
		{" 30 ", 30 * time.Second, false},
		{"10m", 10 * time.Minute, false},
		{"1m30s", 90 * time.Second, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeout(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFlags_ApplyOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("minerbatch", pflag.ContinueOnError)
	f := DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{"-w", "2", "--timeout", "5m", "--no-color", "-m", "ocr"}))

	cfg := DefaultConfig()
	cfg.Executable = "/from/file/magic-pdf"
	require.NoError(t, f.Apply(&cfg))

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, ModeOCR, cfg.Mode)
	// Untouched flag must not clobber the file value.
	assert.Equal(t, "/from/file/magic-pdf", cfg.Executable)
}

func TestFlags_InvalidMode(t *testing.T) {
	fs := pflag.NewFlagSet("minerbatch", pflag.ContinueOnError)
	DefineFlags(fs)
	assert.Error(t, fs.Parse([]string{"--mode", "fast"}))
}

func TestApplyArgs(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ApplyArgs(&cfg, []string{"/in/", "/out/"}))
	assert.Equal(t, "/in", cfg.InputDir)
	assert.Equal(t, "/out", cfg.OutputBase)

	cfg = DefaultConfig()
	cfg.OutputBase = "/env/out"
	require.NoError(t, ApplyArgs(&cfg, []string{"/in"}))
	assert.Equal(t, "/env/out", cfg.OutputBase)

	assert.Error(t, ApplyArgs(&cfg, []string{"a", "b", "c"}))
}
