// Package cmd wires configuration, storage and services into the
// debt-planner command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"debt-planner/config"
	"debt-planner/logging"
)

var (
	flagConfig   string
	flagLogLevel string

	cfg    *config.Config
	logger logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "debt-planner",
	Short: "Debt repayment planner",
	Long: "Project month-by-month debt payoff under the avalanche or snowball strategy,\n" +
		"from scenario files on the command line or over HTTP.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default $HOME/.debt-planner/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Override log level (debug, info, warn, error)")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	if flagLogLevel != "" {
		if err := os.Setenv(config.EnvPrefix+"_LOG_LEVEL", flagLogLevel); err != nil {
			return fmt.Errorf("set log level: %w", err)
		}
	}

	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = c
	logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return nil
}

// output opens path for writing, or returns the command's stdout for "" and "-".
func output(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
