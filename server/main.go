package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/wfgraph"
	"github.com/meikuraledutech/wfgraph/memstore"
	"github.com/meikuraledutech/wfgraph/postgres"
)

func main() {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		slog.Error("config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := newLogger(cfg)

	var store wfgraph.Store
	switch cfg.Store {
	case storeMemory:
		store = memstore.New()
	default:
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("connect", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		store = postgres.New(pool)
	}

	app := newApp(store, logger, cfg.BodyLimit)

	logger.Info("listening", slog.String("addr", cfg.ListenAddr), slog.String("store", cfg.Store))
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Error("listen", slog.Any("error", err))
		os.Exit(1)
	}
}
