package immigrow

import (
	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/domain/search/page"
	"github.com/immigrow/catalog/internal/usecase/catalog"
	"github.com/immigrow/catalog/internal/usecase/ingest"
)

// Record types shared with the API server.
type (
	Organization = record.Organization
	Event        = record.Event
	Resource     = record.Resource

	OrganizationItem = catalog.OrganizationItem
	EventItem        = catalog.EventItem
	ResourceItem     = catalog.ResourceItem

	OrganizationDetail = catalog.OrganizationDetail
	EventDetail        = catalog.EventDetail
	ResourceDetail     = catalog.ResourceDetail
)

// Query selects one page of a list. Zero fields take the server defaults.
// Filters are keyed by the query parameter names of the HTTP API
// (state, city, topic, duration, ...).
type Query struct {
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"
	Page      int
	PerPage   int
	Filters   map[string]string
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

func fromPage[T any](p page.Page[T]) Page[T] {
	return Page[T]{
		Items:      p.Items,
		Total:      p.Total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages(),
	}
}

// SeedReport summarizes a Seed run.
type SeedReport struct {
	RunID         string
	Organizations int
	Events        int
	Resources     int
	Links         int
	Duplicates    int
}

func fromReport(r ingest.Report) SeedReport {
	return SeedReport{
		RunID:         r.RunID,
		Organizations: r.Organizations,
		Events:        r.Events,
		Resources:     r.Resources,
		Links:         r.Links,
		Duplicates:    r.Duplicates.Total(),
	}
}
