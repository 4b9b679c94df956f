package main

import (
	"os"

	"github.com/Camier/MinerOUI/internal/check"
	"github.com/Camier/MinerOUI/internal/config"
	"github.com/Camier/MinerOUI/internal/display"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/spf13/cobra"
)

func newCheckCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [input_dir] [output_base]",
		Short: "Check the converter and the input/output directories",
		Long: "Resolves the converter executable and prints its version, counts matching files\n" +
			"under input_dir and verifies output_base is writable. Paths are optional.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, args, true)
			if err != nil {
				return err
			}
			log, err := logging.NewLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(os.Stdout)
			if !check.RunCheck(cmd.Context(), &cfg, log) {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}
