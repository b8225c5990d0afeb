package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/immigrow/catalog/internal/backend"
	"github.com/immigrow/catalog/internal/config"
	logpkg "github.com/immigrow/catalog/internal/logger"
	"github.com/immigrow/catalog/internal/usecase/ingest"
	"github.com/immigrow/catalog/internal/version"
)

func main() {
	file := flag.String("file", "", "path to the raw dataset JSON file")
	dryRun := flag.Bool("dry-run", false, "build the dataset and report counts without writing")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: immigrow-seed -file dataset.json [-dry-run]")
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, "seed", cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting immigrow seed",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.String("file", *file),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("dry_run", *dryRun),
	)

	f, err := os.Open(filepath.Clean(*file))
	if err != nil {
		logger.Fatal("Failed to open dataset", zap.Error(err))
	}
	raw, err := ingest.Decode(f)
	_ = f.Close()
	if err != nil {
		logger.Fatal("Failed to read dataset", zap.Error(err))
	}

	ctx := logpkg.ContextWithLogger(context.Background(), logger)

	if *dryRun {
		ds, dup := ingest.New(nil, ingest.WithMinLinks(*cfg.Ingest.MinLinks)).Build(raw)
		logger.Info("Dry run",
			zap.Int("organizations", len(ds.Organizations)),
			zap.Int("events", len(ds.Events)),
			zap.Int("resources", len(ds.Resources)),
			zap.Int("links", len(ds.Links)),
			zap.Int("duplicates", dup.Total()),
		)
		return
	}

	store, err := backend.Open(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer store.Close()

	rep, err := ingest.New(store.Catalog, ingest.WithMinLinks(*cfg.Ingest.MinLinks)).Run(ctx, raw)
	if err != nil {
		logger.Error("Seed failed", zap.String("run_id", rep.RunID), zap.Error(err))
		store.Close()
		os.Exit(1) //nolint:gocritic // store closed explicitly above
	}
	logger.Info("Seed complete",
		zap.String("run_id", rep.RunID),
		zap.Int("organizations", rep.Organizations),
		zap.Int("events", rep.Events),
		zap.Int("resources", rep.Resources),
		zap.Int("links", rep.Links),
	)
}
