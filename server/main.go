package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/questgraph"
	"github.com/meikuraledutech/questgraph/config"
	"github.com/meikuraledutech/questgraph/httpapi"
	"github.com/meikuraledutech/questgraph/logging"
	"github.com/meikuraledutech/questgraph/memory"
	"github.com/meikuraledutech/questgraph/postgres"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	var store questgraph.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
		store = postgres.New(pool)
		logger.Info("Using Postgres store.")
	} else {
		store = memory.New()
		logger.Info("DATABASE_URL is not set, using in-memory store.")
	}

	app := httpapi.New(store, logger)
	logger.Info("Listening.", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error("Server stopped.", "error", err)
		os.Exit(1)
	}
}
