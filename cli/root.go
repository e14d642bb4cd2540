// Package cli implements the irbn-report command line.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/config"
	"github.com/Aashish23092/irbn-report-extractor/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string

	cfg   *config.Config
	rules utils.Rules
)

var rootCmd = &cobra.Command{
	Use:   "irbn-report",
	Short: "Consolidate IRBn daily reports into one sheet",
	Long: `Extracts the twelve daily-report fields from pasted or uploaded
battalion reports and renders the consolidated report as xlsx or pdf.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg = config.LoadConfig()
	if configPath != "" {
		fc, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		config.ApplyFile(cfg, fc)
	}

	var err error
	rules, err = config.LoadRules(cfg.RulesFile)
	if err != nil {
		return err
	}
	log.Debug().Str("rules", cfg.RulesFile).Bool("qa", cfg.QAModel != "").Msg("configuration loaded")
	return nil
}
