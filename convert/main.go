package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/questgraph/batch"
	"github.com/meikuraledutech/questgraph/config"
	"github.com/meikuraledutech/questgraph/jsondoc"
	"github.com/meikuraledutech/questgraph/logging"
	"github.com/meikuraledutech/questgraph/postgres"
	"github.com/meikuraledutech/questgraph/yamldoc"
)

// main converts the narrative YAML sources into the frontend JSON files.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConvert()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(run(ctx, cfg, os.Stderr))
}

// run executes the batch and returns the process exit code. Partial success
// exits 0; the run fails only when no present input could be converted.
func run(ctx context.Context, cfg *config.Convert, logW io.Writer) int {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, logW)

	runner := &batch.Runner{
		Loader:  yamldoc.NewLoader(),
		Writer:  jsondoc.NewWriter(),
		Logger:  logger,
		Workers: cfg.Workers,
	}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Could not connect to Postgres.", "error", err)
			return 1
		}
		defer pool.Close()
		store := postgres.New(pool)
		if err := store.CreateSchema(ctx); err != nil {
			logger.Error("Could not create schema.", "error", err)
			return 1
		}
		runner.Sink = store
	}

	report, err := runner.Run(ctx, batch.DefaultPairs(cfg.Root))
	if err != nil {
		logger.Error("Batch interrupted.", "error", err)
		return 1
	}
	if report.Converted() == 0 && report.Failed() > 0 {
		return 1
	}
	return 0
}
