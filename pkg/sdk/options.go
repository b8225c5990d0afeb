package immigrow

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/immigrow/catalog/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string
	addrs     []string
	password  string
	dsn       string
	keyPrefix string

	lenient  bool
	perPage  int
	maxPage  int
	minLinks *int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPostgres configures the client to use the relational backend.
// The schema is migrated on connect.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverPostgres
		c.dsn = dsn
	})
}

// WithKeyPrefix overrides the Valkey/Redis key namespace.
// Default: "immigrow:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLenientParams makes malformed query values fall back to defaults
// instead of failing with ErrInvalidQuery.
func WithLenientParams() Option {
	return optionFunc(func(c *clientConfig) {
		c.lenient = true
	})
}

// WithPageSize sets the default and maximum page sizes.
// Defaults: 15 and 100.
func WithPageSize(perPage, maxPerPage int) Option {
	return optionFunc(func(c *clientConfig) {
		c.perPage = perPage
		c.maxPage = maxPerPage
	})
}

// WithMinLinks sets how many resources Seed links to every event and
// organization. Default: 1.
func WithMinLinks(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minLinks = &n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// toConfig maps client options onto the server configuration.
func (c *clientConfig) toConfig() *config.Config {
	strict := !c.lenient
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:   c.driver,
			Addrs:    c.addrs,
			Password: c.password,
			DSN:      c.dsn,
		},
		Storage: config.StorageConfig{KeyPrefix: c.keyPrefix},
		Query: config.QueryConfig{
			DefaultPerPage: c.perPage,
			MaxPerPage:     c.maxPage,
		},
		API:    config.APIConfig{StrictParams: &strict},
		Ingest: config.IngestConfig{MinLinks: c.minLinks},
	}
	cfg.ApplyDefaults()
	return cfg
}
