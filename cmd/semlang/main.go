package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/semlang/semlang/internal/config"
)

var version = "dev"

// errDiagnostics signals that diagnostics were printed; main exits 1
// without printing it again.
var errDiagnostics = errors.New("errors reported")

type globalFlags struct {
	configPath string
	format     string
	logLevel   string
	maxErrors  int
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "semlang",
		Short:         "semlang - language front end",
		Long:          `semlang lexes and parses source files and reports diagnostics.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.FileName, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "", "Diagnostic format (text, json)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&flags.maxErrors, "max-errors", -1, "Maximum diagnostics per file (0 = unlimited)")

	// Add subcommands
	rootCmd.AddCommand(tokensCmd(flags))
	rootCmd.AddCommand(parseCmd(flags))
	rootCmd.AddCommand(checkCmd(flags))
	rootCmd.AddCommand(watchCmd(flags))

	return rootCmd
}

// loadConfig reads the configuration file, applies flag overrides and
// configures the global logger.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	if flags.format != "" {
		cfg.Format = flags.format
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.maxErrors >= 0 {
		cfg.MaxErrors = flags.maxErrors
	}

	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid config: %w", err)
	}

	logger := log.Logger.Level(cfg.Level())
	if cfg.Format == config.FormatJSON {
		logger = zerolog.New(cmd.ErrOrStderr()).Level(cfg.Level()).With().Timestamp().Logger()
	}

	return cfg, logger, nil
}
