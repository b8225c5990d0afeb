package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/domain/search/page"
	"github.com/immigrow/catalog/internal/domain/search/request"
)

// OrganizationItem is a list row: the organization and its linked resource ids.
type OrganizationItem struct {
	record.Organization
	ResourceIDs []int64
}

// EventItem is a list row: the event and its linked resource ids.
type EventItem struct {
	record.Event
	ResourceIDs []int64
}

// ResourceItem is a list row: the resource and its linked event and organization ids.
type ResourceItem struct {
	record.Resource
	EventIDs        []int64
	OrganizationIDs []int64
}

// OrganizationDetail is an organization with its owned events and linked resources.
type OrganizationDetail struct {
	record.Organization
	Events    []record.Event
	Resources []record.Resource
}

// EventDetail is an event with its owning organization (nil when none) and resources.
type EventDetail struct {
	record.Event
	Organization *record.Organization
	Resources    []record.Resource
}

// ResourceDetail is a resource with its linked organizations and events.
type ResourceDetail struct {
	record.Resource
	Organizations []record.Organization
	Events        []record.Event
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder sets the query pipeline observer.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLimits overrides the list parameter limits.
func WithLimits(l request.Limits) Option {
	return func(s *Service) { s.limits = l }
}

// WithStrictParams toggles rejection of malformed list parameters.
func WithStrictParams(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// Service runs list pipelines and detail lookups over the catalog.
type Service struct {
	repo     Repository
	recorder Recorder
	limits   request.Limits
	strict   bool
}

// New creates a catalog service. Parameters are strict by default.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		recorder: nopRecorder{},
		limits:   request.DefaultLimits(),
		strict:   true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewRequest validates raw list parameters for kind with the configured limits.
func (s *Service) NewRequest(kind record.Kind, p request.Params) (request.Request, error) {
	schema, ok := Schema(kind)
	if !ok {
		return request.Request{}, fmt.Errorf("unknown entity kind %q", kind)
	}
	return request.New(p, schema, s.limits, s.strict)
}

// StrictParams reports whether malformed list parameters are rejected.
func (s *Service) StrictParams() bool { return s.strict }

// ListOrganizations returns one page of organizations with their resource ids.
func (s *Service) ListOrganizations(ctx context.Context, req *request.Request) (page.Page[OrganizationItem], error) {
	p, err := list(ctx, s, &organizations, s.repo.ListOrganizations, req)
	if err != nil {
		return page.Page[OrganizationItem]{}, err
	}
	links, err := s.repo.Linked(ctx, record.OrganizationResources, record.Left, organizations.ids(p.Items))
	if err != nil {
		return page.Page[OrganizationItem]{}, fmt.Errorf("link organization resources: %w", err)
	}
	return page.Map(p, func(o record.Organization) OrganizationItem {
		return OrganizationItem{Organization: o, ResourceIDs: linkIDs(links, o.ID)}
	}), nil
}

// ListEvents returns one page of events with their resource ids.
func (s *Service) ListEvents(ctx context.Context, req *request.Request) (page.Page[EventItem], error) {
	p, err := list(ctx, s, &events, s.repo.ListEvents, req)
	if err != nil {
		return page.Page[EventItem]{}, err
	}
	links, err := s.repo.Linked(ctx, record.EventResources, record.Left, events.ids(p.Items))
	if err != nil {
		return page.Page[EventItem]{}, fmt.Errorf("link event resources: %w", err)
	}
	return page.Map(p, func(e record.Event) EventItem {
		return EventItem{Event: e, ResourceIDs: linkIDs(links, e.ID)}
	}), nil
}

// ListResources returns one page of resources with their event and organization ids.
func (s *Service) ListResources(ctx context.Context, req *request.Request) (page.Page[ResourceItem], error) {
	p, err := list(ctx, s, &resources, s.repo.ListResources, req)
	if err != nil {
		return page.Page[ResourceItem]{}, err
	}
	ids := resources.ids(p.Items)
	evLinks, err := s.repo.Linked(ctx, record.EventResources, record.Right, ids)
	if err != nil {
		return page.Page[ResourceItem]{}, fmt.Errorf("link resource events: %w", err)
	}
	orgLinks, err := s.repo.Linked(ctx, record.OrganizationResources, record.Right, ids)
	if err != nil {
		return page.Page[ResourceItem]{}, fmt.Errorf("link resource organizations: %w", err)
	}
	return page.Map(p, func(r record.Resource) ResourceItem {
		return ResourceItem{
			Resource:        r,
			EventIDs:        linkIDs(evLinks, r.ID),
			OrganizationIDs: linkIDs(orgLinks, r.ID),
		}
	}), nil
}

// GetOrganization returns an organization with its events and resources.
func (s *Service) GetOrganization(ctx context.Context, id int64) (OrganizationDetail, error) {
	o, err := s.repo.GetOrganization(ctx, id)
	if err != nil {
		return OrganizationDetail{}, fmt.Errorf("get organization: %w", err)
	}
	evs, err := s.repo.EventsByOrganization(ctx, id)
	if err != nil {
		return OrganizationDetail{}, fmt.Errorf("organization events: %w", err)
	}
	res, err := s.linkedResources(ctx, record.OrganizationResources, id)
	if err != nil {
		return OrganizationDetail{}, err
	}
	return OrganizationDetail{Organization: o, Events: evs, Resources: res}, nil
}

// GetEvent returns an event with its organization and resources.
// A dangling organization reference resolves to nil.
func (s *Service) GetEvent(ctx context.Context, id int64) (EventDetail, error) {
	e, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return EventDetail{}, fmt.Errorf("get event: %w", err)
	}
	d := EventDetail{Event: e}
	if e.OrganizationID != nil {
		o, err := s.repo.GetOrganization(ctx, *e.OrganizationID)
		switch {
		case err == nil:
			d.Organization = &o
		case !errors.Is(err, domain.ErrNotFound):
			return EventDetail{}, fmt.Errorf("event organization: %w", err)
		}
	}
	if d.Resources, err = s.linkedResources(ctx, record.EventResources, id); err != nil {
		return EventDetail{}, err
	}
	return d, nil
}

// GetResource returns a resource with its organizations and events.
func (s *Service) GetResource(ctx context.Context, id int64) (ResourceDetail, error) {
	r, err := s.repo.GetResource(ctx, id)
	if err != nil {
		return ResourceDetail{}, fmt.Errorf("get resource: %w", err)
	}
	ids := []int64{id}

	orgLinks, err := s.repo.Linked(ctx, record.OrganizationResources, record.Right, ids)
	if err != nil {
		return ResourceDetail{}, fmt.Errorf("link resource organizations: %w", err)
	}
	orgs, err := s.repo.OrganizationsByID(ctx, orgLinks[id])
	if err != nil {
		return ResourceDetail{}, fmt.Errorf("resource organizations: %w", err)
	}

	evLinks, err := s.repo.Linked(ctx, record.EventResources, record.Right, ids)
	if err != nil {
		return ResourceDetail{}, fmt.Errorf("link resource events: %w", err)
	}
	evs, err := s.repo.EventsByID(ctx, evLinks[id])
	if err != nil {
		return ResourceDetail{}, fmt.Errorf("resource events: %w", err)
	}

	return ResourceDetail{Resource: r, Organizations: orgs, Events: evs}, nil
}

func (s *Service) linkedResources(ctx context.Context, set record.LinkSet, id int64) ([]record.Resource, error) {
	links, err := s.repo.Linked(ctx, set, record.Left, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("link %s: %w", set, err)
	}
	res, err := s.repo.ResourcesByID(ctx, links[id])
	if err != nil {
		return nil, fmt.Errorf("%s resources: %w", set.LeftKind(), err)
	}
	return res, nil
}

type nopRecorder struct{}

func (nopRecorder) ObserveQuery(string, string, time.Duration, int) {}
func (nopRecorder) ObserveQueryError(string)                        {}
