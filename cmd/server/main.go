package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/questhunt/internal/catalog"
	"github.com/playperu/questhunt/internal/config"
	"github.com/playperu/questhunt/internal/database"
	"github.com/playperu/questhunt/internal/engine"
	"github.com/playperu/questhunt/internal/ledger"
	"github.com/playperu/questhunt/internal/migrations"
	"github.com/playperu/questhunt/internal/server"
	"github.com/playperu/questhunt/internal/token"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- State token codec ---
	key, err := cfg.TokenKey()
	if err != nil {
		return err
	}
	tokens, err := token.NewCodec(key)
	if err != nil {
		return fmt.Errorf("building token codec: %w", err)
	}

	// --- Quest catalog ---
	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		logger.Info("catalog loaded", "path", cfg.CatalogPath)
	} else {
		cat, err = catalog.Demo()
		if err != nil {
			return fmt.Errorf("loading demo catalog: %w", err)
		}
		logger.Warn("no CATALOG_PATH set, using the bundled demo catalog")
	}

	// --- SQLite (leaderboard) ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Engine ---
	eng := engine.New(cat, cfg.LocationCheck)
	if !cfg.LocationCheck {
		logger.Warn("location verification disabled at startup")
	}
	if cfg.OperatorPasswordHash == "" {
		logger.Warn("no OPERATOR_PASSWORD_HASH set, operator routes disabled")
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Engine:               eng,
		Tokens:               tokens,
		Catalog:              cat,
		Ledger:               ledger.New(db),
		DB:                   db,
		OperatorPasswordHash: cfg.OperatorPasswordHash,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
