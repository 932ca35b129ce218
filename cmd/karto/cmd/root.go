// Package cmd implements the karto CLI commands.
//
// The root command resolves karto.yaml and sets up logging before any
// subcommand runs; subcommands read both from package state.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/karto-app/karto/internal/config"
	kartoerrors "github.com/karto-app/karto/pkg/errors"
)

var (
	// cfgFile is an explicit config file (set via --config).
	cfgFile string

	// logLevel overrides log.level (set via --log-level).
	logLevel string

	// cfg holds the resolved configuration.
	cfg *config.Resolved

	// logger is shared by every subcommand.
	logger *log.Logger

	// logCloser closes the rotated log file, if any.
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "karto",
	Short: "KARTO gift-card filter sheet",
	Long: `karto hosts the KARTO filter bottom sheet outside a phone.

Run "karto demo" for an interactive terminal version, "karto snapshot" to
render a frame of the sheet animation to PNG, or "karto simulate" to replay
a drag gesture headlessly and log every frame.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return err
		}
		return setupLogger(cmd.ErrOrStderr())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./karto.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func loadConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.ResolveFile(cfgFile)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return err
		}
		cfg, err = config.Resolve(wd)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// setupLogger builds the shared logger. A configured log file is rotated
// with lumberjack; otherwise logs go to stderr.
func setupLogger(stderr io.Writer) error {
	level := cfg.LogLevel
	if logLevel != "" {
		l, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		level = l
	}

	var w io.Writer = stderr
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		}
		w = lj
		logCloser = lj
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "karto",
		ReportTimestamp: true,
	})
	log.SetDefault(logger)
	kartoerrors.SetHandler(&kartoerrors.LogHandler{Logger: logger, Verbose: level <= log.DebugLevel})
	logger.Debug("config resolved", "path", cfg.Path, "viewport", cfg.Viewport, "sheet_height", cfg.SheetHeight)
	return nil
}
