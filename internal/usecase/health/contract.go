package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker reports whether the catalog has been seeded.
type CatalogChecker interface {
	Seeded(ctx context.Context) (bool, error)
}
