package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mergington.GO/config"
	"mergington.GO/core/logger"
)

var rootCmd = &cobra.Command{
	Use:           "mergington",
	Short:         "Mergington High School extracurricular activities",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads the application config and builds the logger it describes.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	return cfg, logger.New(level, cfg.LogFormat).Named(cfg.AppName), nil
}
