// Package postgres opens the relational catalog backend through gorm.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/immigrow/catalog/internal/db"
)

// Compile-time check: DB answers readiness pings.
var _ db.Pinger = (*DB)(nil)

// Config holds connection parameters for PostgreSQL.
type Config struct {
	DSN string
}

// DB wraps a gorm handle with the lifecycle methods the server expects.
type DB struct {
	gorm *gorm.DB
}

// Open connects lazily; use WaitForReady to block until the server answers.
func Open(cfg Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &DB{gorm: gdb}, nil
}

// NewFromGorm wraps an existing handle.
func NewFromGorm(gdb *gorm.DB) *DB {
	return &DB{gorm: gdb}
}

// Gorm returns the underlying handle.
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Migrate creates or updates tables for models.
func (d *DB) Migrate(ctx context.Context, models ...any) error {
	if err := d.gorm.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("schema migration: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() {
	if sqlDB, err := d.gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// WaitForReady blocks until Ping succeeds or timeout expires.
func (d *DB) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, d, timeout)
}
