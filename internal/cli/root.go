// Package cli wires the tableize demo commands.
package cli

import (
	"fmt"

	"github.com/on-the-ground/tableize_go/internal/config"
	"github.com/on-the-ground/tableize_go/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// app is what every subcommand gets once the root command has loaded config.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := logging.Build(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "tableize",
		Short:             "Memoize pure functions and try them on small demos",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides "+config.KeyLogLevel)

	root.AddCommand(
		newFibCmd(a),
		newLevenshteinCmd(a),
		newPiCmd(a),
		newTuneCmd(a),
		newValidateCmd(a),
		newPriceCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Run executes the command line and returns the process exit code.
func Run() int {
	if err := NewRootCmd().Execute(); err != nil {
		// cobra already printed the error
		return ExitFailure
	}
	return ExitSuccess
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
