package immigrow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/immigrow/catalog/internal/backend"
	"github.com/immigrow/catalog/internal/config"
	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/domain/search/page"
	"github.com/immigrow/catalog/internal/domain/search/request"
	"github.com/immigrow/catalog/internal/usecase/catalog"
	healthuc "github.com/immigrow/catalog/internal/usecase/health"
	"github.com/immigrow/catalog/internal/usecase/ingest"
)

// Internal interfaces, swapped for fakes in tests.
type catalogUseCase interface {
	NewRequest(kind record.Kind, p request.Params) (request.Request, error)
	ListOrganizations(ctx context.Context, req *request.Request) (page.Page[catalog.OrganizationItem], error)
	ListEvents(ctx context.Context, req *request.Request) (page.Page[catalog.EventItem], error)
	ListResources(ctx context.Context, req *request.Request) (page.Page[catalog.ResourceItem], error)
	GetOrganization(ctx context.Context, id int64) (catalog.OrganizationDetail, error)
	GetEvent(ctx context.Context, id int64) (catalog.EventDetail, error)
	GetResource(ctx context.Context, id int64) (catalog.ResourceDetail, error)
}

type ingestUseCase interface {
	Run(ctx context.Context, raw ingest.RawDataset) (ingest.Report, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the embedded catalog entry point.
type Client struct {
	backend   *backend.Backend
	catalog   catalogUseCase
	ingest    ingestUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, o := range opts {
		o.apply(cc)
	}
	if err := cc.validate(); err != nil {
		return nil, err
	}

	obs, err := newObserver(cc.logger, cc.metricsReg)
	if err != nil {
		return nil, err
	}

	cfg := cc.toConfig()
	b, err := backend.Open(ctx, cfg, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("immigrow: %w", err)
	}
	return wireClient(b, cfg, obs), nil
}

func (c *clientConfig) validate() error {
	switch c.driver {
	case "":
		return errors.New("immigrow: database required (use WithValkey, WithRedis or WithPostgres)")
	case config.DriverPostgres:
		if c.dsn == "" {
			return errors.New("immigrow: postgres dsn required")
		}
	default:
		if len(c.addrs) == 0 || c.addrs[0] == "" {
			return errors.New("immigrow: database address required")
		}
	}
	if c.perPage < 0 || c.maxPage < 0 || (c.maxPage > 0 && c.perPage > c.maxPage) {
		return fmt.Errorf("immigrow: invalid page size %d (max %d)", c.perPage, c.maxPage)
	}
	if c.minLinks != nil && *c.minLinks < 0 {
		return fmt.Errorf("immigrow: min links must not be negative, got %d", *c.minLinks)
	}
	return nil
}

func wireClient(b *backend.Backend, cfg *config.Config, obs *observer) *Client {
	catalogSvc := catalog.New(b.Catalog,
		catalog.WithStrictParams(cfg.API.Strict()),
		catalog.WithLimits(request.Limits{
			DefaultPerPage:  cfg.Query.DefaultPerPage,
			MaxPerPage:      cfg.Query.MaxPerPage,
			MaxSearchLength: cfg.Query.MaxSearchLength,
			MaxSearchTokens: cfg.Query.MaxSearchTokens,
		}),
	)
	return &Client{
		backend:   b,
		catalog:   catalogSvc,
		ingest:    ingest.New(b.Catalog, ingest.WithMinLinks(*cfg.Ingest.MinLinks)),
		healthSvc: healthuc.New(b.DB, b.Catalog),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.backend != nil {
		c.backend.Close()
	}
}

// Organizations returns one page of organizations matching q.
func (c *Client) Organizations(ctx context.Context, q Query) (p Page[OrganizationItem], err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_organizations", start, err) }()

	req, err := c.catalog.NewRequest(record.KindOrganization, q.params())
	if err != nil {
		return Page[OrganizationItem]{}, err
	}
	res, err := c.catalog.ListOrganizations(ctx, &req)
	if err != nil {
		return Page[OrganizationItem]{}, fmt.Errorf("list organizations: %w", err)
	}
	return fromPage(res), nil
}

// Events returns one page of events matching q.
func (c *Client) Events(ctx context.Context, q Query) (p Page[EventItem], err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_events", start, err) }()

	req, err := c.catalog.NewRequest(record.KindEvent, q.params())
	if err != nil {
		return Page[EventItem]{}, err
	}
	res, err := c.catalog.ListEvents(ctx, &req)
	if err != nil {
		return Page[EventItem]{}, fmt.Errorf("list events: %w", err)
	}
	return fromPage(res), nil
}

// Resources returns one page of legal resources matching q.
func (c *Client) Resources(ctx context.Context, q Query) (p Page[ResourceItem], err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_resources", start, err) }()

	req, err := c.catalog.NewRequest(record.KindResource, q.params())
	if err != nil {
		return Page[ResourceItem]{}, err
	}
	res, err := c.catalog.ListResources(ctx, &req)
	if err != nil {
		return Page[ResourceItem]{}, fmt.Errorf("list resources: %w", err)
	}
	return fromPage(res), nil
}

// Organization returns one organization with its events and resources.
func (c *Client) Organization(ctx context.Context, id int64) (d OrganizationDetail, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_organization", start, err) }()
	return c.catalog.GetOrganization(ctx, id)
}

// Event returns one event with its organization and resources.
func (c *Client) Event(ctx context.Context, id int64) (d EventDetail, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_event", start, err) }()
	return c.catalog.GetEvent(ctx, id)
}

// Resource returns one resource with its organizations and events.
func (c *Client) Resource(ctx context.Context, id int64) (d ResourceDetail, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_resource", start, err) }()
	return c.catalog.GetResource(ctx, id)
}

// Seed decodes a raw dataset from r and replaces the stored catalog with it.
func (c *Client) Seed(ctx context.Context, r io.Reader) (rep SeedReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("seed", start, err) }()

	raw, err := ingest.Decode(r)
	if err != nil {
		return SeedReport{}, fmt.Errorf("seed: %w", err)
	}
	res, err := c.ingest.Run(ctx, raw)
	if err != nil {
		return SeedReport{}, fmt.Errorf("seed: %w", err)
	}
	return fromReport(res), nil
}

// params renders q in the string form the HTTP layer binds.
func (q Query) params() request.Params {
	p := request.Params{
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Filters:   q.Filters,
	}
	if q.Page != 0 {
		p.Page = strconv.Itoa(q.Page)
	}
	if q.PerPage != 0 {
		p.PerPage = strconv.Itoa(q.PerPage)
	}
	return p
}
