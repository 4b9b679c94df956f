package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Camier/MinerOUI/internal/check"
	"github.com/Camier/MinerOUI/internal/config"
	"github.com/Camier/MinerOUI/internal/display"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/Camier/MinerOUI/internal/pipeline"
	"github.com/Camier/MinerOUI/internal/stats"
	"github.com/Camier/MinerOUI/internal/status"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "minerbatch [input_dir] [output_base]",
		Short: "Batch-convert documents with an external converter",
		Long: "minerbatch discovers every matching file under input_dir, runs the converter on each\n" +
			"with a bounded worker pool and a per-file timeout, skips files already converted,\n" +
			"preserves failed inputs under failed/ and writes stats/processing_stats.json.",
		Args:          cobra.MaximumNArgs(2),
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.DefineFlags(root.PersistentFlags())

	root.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flags, args, false)
		if err != nil {
			return err
		}
		return runBatch(cmd.Context(), &cfg)
	}

	root.AddCommand(newCheckCmd(flags), newReportCmd(flags))
	return root
}

// runBatch is the run command proper: resolve paths, check the tool, run the
// pipeline under a signal-aware context and map the result to an exit code.
func runBatch(parent context.Context, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)

	// 1. Resolve and validate paths: input must exist, output is created if needed, output must not be inside input.
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return &exitError{code: 1}
	}
	if err := os.MkdirAll(cfg.OutputBase, 0o755); err != nil {
		log.Error("Cannot create output base: %s", cfg.OutputBase)
		return &exitError{code: 1}
	}
	outputAbs, err := absPath(cfg.OutputBase)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputBase)
		return &exitError{code: 1}
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.InputDir)
		return &exitError{code: 1}
	}
	cfg.InputDir, cfg.OutputBase = inputAbs, outputAbs

	log.Info("=== minerbatch v%s ===", version)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputBase)
	log.Info("Tool: %s -m %s", cfg.Executable, cfg.Mode)

	// 2. Fail fast when the converter cannot be found.
	if err := check.CheckDeps(cfg); err != nil {
		log.Error("%v", err)
		return &exitError{code: 1}
	}

	// 3. Run. SIGINT/SIGTERM cancel ctx: dispatch stops, running children are killed,
	// and statistics are still written.
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, log)
	if cfg.StatusAddr != "" {
		srv, err := status.Start(cfg.StatusAddr, p, log)
		if err != nil {
			log.Error("%v", err)
			return &exitError{code: 1}
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("%v", err)
			}
		}()
	}

	_, err = p.Run(ctx)
	var setupErr *pipeline.SetupError
	var invErr *stats.InvariantError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pipeline.ErrInterrupted):
		log.Warn("Interrupted; rerun the same command to resume")
	case errors.As(err, &setupErr):
		log.Error("%v", setupErr)
	case errors.As(err, &invErr):
		// Already logged by the recorder.
	default:
		log.Error("%v", err)
	}
	return &exitError{code: 1}
}
