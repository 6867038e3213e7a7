package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Furim/MoneyFlexerski/internal/config"
	applog "github.com/Furim/MoneyFlexerski/internal/log"
	"github.com/Furim/MoneyFlexerski/internal/services"
	"github.com/Furim/MoneyFlexerski/internal/store"
	"github.com/Furim/MoneyFlexerski/internal/store/memory"
	"github.com/Furim/MoneyFlexerski/internal/storage"
	"github.com/Furim/MoneyFlexerski/internal/tui"
)

func main() {
	// Load .env for local development (ignore errors when absent)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		applog.New(applog.DefaultConfig()).Error("Failed to load configuration", applog.FieldError, err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	var st store.Store
	switch cfg.Backend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		st = repo
	default:
		st = memory.New()
	}
	logger.Info("Store initialized", applog.FieldBackend, cfg.Backend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := services.NewTracker(st)
	sections := services.NewSectionLedger(st)
	if err := sections.Load(ctx); err != nil {
		logger.Error("Failed to load sections", applog.FieldError, err)
		os.Exit(1)
	}

	app := tui.NewApp(st, tracker, sections, logger, cfg.CurrencySymbol, os.Stdin, os.Stdout)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return app.Run(ctx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Application error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Stopped")
}
