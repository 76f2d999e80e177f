package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"web2pdf/internal/config"
	"web2pdf/internal/infra/logging"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web2pdf",
		Short: "Convert web pages to PDF",
		Long: `web2pdf serves a small form that turns a URL into a downloadable PDF,
and converts pages from the command line through the same backend.

Rendering itself is done by an upstream service configured under "upstream".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML config (default: $CONFIG_PATH or the XDG config dir)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig honors --config, then CONFIG_PATH and the XDG search path,
// and falls back to defaults when no file exists.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}
	if path == "" {
		return config.Load(), nil
	}
	return config.Read(path)
}

// initLogging configures the package logger from cfg. level, when set,
// overrides the configured level.
func initLogging(cmd *cobra.Command, cfg config.Config, level string) {
	if level == "" {
		level = cfg.Logger.Level
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		level,
	)
}
