package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hashicorp/go-multierror"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/cli"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/config"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/session"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/storage"
)

// bootstrap loads the configuration, initializes the logger, the store, the
// session manager and the CLI, runs the scripts and then the interactive
// loop. Close errors of the store and the logger are collected into the
// returned error.
func bootstrap(opts *rootOpts, scripts []string) (err error) {
	ctx := context.Background()

	// Set up channel to receive interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := config.ConfigLoad(opts.cfgFile); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()
	opts.apply(cfg)

	logger, err := log.NewLogger(cfg, opts.debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("failed to close logger: %w", cerr))
		}
	}()

	logger.Info(ctx, "Application started", log.Fields{"config": config.ConfigPath(), "database": config.DatabasePath(cfg)})

	store, err := storage.NewSQLiteStore(cfg.DatabaseDir, cfg.DatabaseFile)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error(ctx, "Failed to close storage", log.Fields{"error": cerr})
			err = multierror.Append(err, fmt.Errorf("failed to close storage: %w", cerr))
		}
	}()

	logger.Info(ctx, "Storage initialized", nil)

	if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	sessionManager := session.NewSessionManager(store, cfg, logger)
	defer sessionManager.Stop()

	cliInstance, err := cli.NewCLI(sessionManager, cfg, logger, os.Stdout)
	if err != nil {
		logger.Error(ctx, "Failed to initialize CLI", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI: %w", err)
	}

	logger.Info(ctx, "CLI instance created", nil)

	// Set up graceful shutdown
	go func() {
		<-sigChan
		logger.Info(ctx, "Received interrupt signal. Shutting down...", nil)
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cliInstance.Stop()
	}()

	if opts.graph != "" {
		if err := cliInstance.Execute(fmt.Sprintf("graph open \"%s\"", opts.graph)); err != nil {
			return fmt.Errorf("failed to open graph '%s': %w", opts.graph, err)
		}
	}

	for _, script := range scripts {
		if err := cliInstance.ExecuteScript(script); err != nil {
			if errors.Is(err, cli.ErrExit) {
				logger.Info(ctx, "Script requested exit", log.Fields{"script": script})
				return nil
			}
			logger.Error(ctx, "Script failed", log.Fields{"script": script, "error": err})
			fmt.Fprintf(os.Stderr, "Error executing script %s: %v\n", script, err)
		}
	}

	if err := cliInstance.Run(); err != nil {
		logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %w", err)
	}

	logger.Info(ctx, "Application shutting down", nil)
	fmt.Println("Goodbye!")
	return nil
}
