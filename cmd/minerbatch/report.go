package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Camier/MinerOUI/internal/config"
	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/Camier/MinerOUI/internal/stats"
	"github.com/spf13/cobra"
)

var errNeedOutputBase = errors.New("report needs output_base (argument, --config or MINERBATCH_OUTPUT_BASE) or --file")

func newReportCmd(flags *config.Flags) *cobra.Command {
	var statsFile string
	cmd := &cobra.Command{
		Use:   "report [output_base]",
		Short: "Summarize a finished run from its statistics file",
		Long: "Loads <output_base>/stats/processing_stats.json (or --file), validates it against\n" +
			"the statistics schema and prints counts, duration percentiles, slow-job outliers\n" +
			"and the failure list.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, nil, true)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.OutputBase = config.NormalizeDirArg(args[0])
			}

			path := statsFile
			if path == "" {
				if cfg.OutputBase == "" {
					return errNeedOutputBase
				}
				path = filepath.Join(cfg.OutputBase, "stats", "processing_stats.json")
			}

			log, err := logging.NewLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			s, err := stats.Load(path)
			if err != nil {
				log.Error("%v", err)
				return &exitError{code: 1}
			}
			stats.PrintReport(os.Stdout, log, s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&statsFile, "file", "f", "", "Statistics file to read instead of <output_base>/stats/processing_stats.json")
	return cmd
}
