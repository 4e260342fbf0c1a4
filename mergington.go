//go:build !cli

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mergington.GO/config"
	"mergington.GO/core/logger"
	"mergington.GO/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred signal and logger cleanup always happens.
func run() error {
	config.LoadEnv()
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log := logger.New(level, cfg.LogFormat).Named(cfg.AppName)
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
