// Command sessionctl inspects and prunes the Spendly session store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spendly/config"
	"spendly/internal/session/backend"
	"spendly/internal/session/repository"
	"spendly/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &App{Out: os.Stdout, Open: openFromConfig}
	if err := app.CreateRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openFromConfig(ctx context.Context, driver string) (repository.Repository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if driver != "" {
		cfg.Session.Driver = driver
	}
	// Retention must see the real store, not a warm cache in front of it.
	cfg.Session.Cache.Enabled = false

	logger := log.Init(log.ZapConfig{
		Level:    "warn",
		Mode:     cfg.Logger.Mode,
		Encoding: "console",
	})
	return backend.Open(ctx, cfg.Session, logger)
}
