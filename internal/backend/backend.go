// Package backend opens the configured catalog storage for the binaries.
package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/immigrow/catalog/internal/config"
	"github.com/immigrow/catalog/internal/db/postgres"
	dbRedis "github.com/immigrow/catalog/internal/db/redis"
	catalogrepo "github.com/immigrow/catalog/internal/repository/catalog"
	"github.com/immigrow/catalog/internal/repository/sqlcatalog"
	"github.com/immigrow/catalog/internal/usecase/catalog"
	"github.com/immigrow/catalog/internal/usecase/health"
	"github.com/immigrow/catalog/internal/usecase/ingest"
)

// Catalog is what both storage backends provide.
type Catalog interface {
	catalog.Repository
	ingest.Writer
	health.CatalogChecker
}

// Compile-time checks: both repositories satisfy Catalog.
var (
	_ Catalog = (*catalogrepo.Repo)(nil)
	_ Catalog = (*sqlcatalog.Repo)(nil)
)

// Backend is an open, ready storage backend.
type Backend struct {
	Catalog Catalog
	DB      health.DBPinger
	close   func()
}

// Close releases the underlying connections.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects to the configured driver and blocks until it answers.
// The relational backend is migrated before returning.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second

	switch cfg.Database.Driver {
	case config.DriverValkey, config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
		}
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s not ready: %w", cfg.Database.Driver, err)
		}
		logger.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Strings("addrs", cfg.Database.Addrs),
		)
		return &Backend{
			Catalog: catalogrepo.New(store, cfg.Storage.KeyPrefix),
			DB:      store,
			close:   store.Close,
		}, nil

	case config.DriverPostgres:
		pg, err := postgres.Open(postgres.Config{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		if err := pg.WaitForReady(ctx, timeout); err != nil {
			pg.Close()
			return nil, fmt.Errorf("postgres not ready: %w", err)
		}
		if err := pg.Migrate(ctx, sqlcatalog.Models()...); err != nil {
			pg.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		return &Backend{
			Catalog: sqlcatalog.New(pg.Gorm()),
			DB:      pg,
			close:   pg.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
