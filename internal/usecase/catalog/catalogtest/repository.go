// Package catalogtest provides an in-memory catalog.Repository for tests.
package catalogtest

import (
	"cmp"
	"context"
	"slices"

	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/record"
)

// Repository serves a fixed Dataset. Set Err to make every call fail.
type Repository struct {
	ds  record.Dataset
	Err error

	// LinkedCalls counts Linked invocations.
	LinkedCalls int
}

// NewRepository copies ds and orders every collection by id.
func NewRepository(ds record.Dataset) *Repository {
	c := record.Dataset{
		Organizations: slices.Clone(ds.Organizations),
		Events:        slices.Clone(ds.Events),
		Resources:     slices.Clone(ds.Resources),
		Links:         slices.Clone(ds.Links),
	}
	slices.SortFunc(c.Organizations, func(a, b record.Organization) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(c.Events, func(a, b record.Event) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(c.Resources, func(a, b record.Resource) int { return cmp.Compare(a.ID, b.ID) })
	return &Repository{ds: c}
}

func (r *Repository) ListOrganizations(_ context.Context) ([]record.Organization, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return slices.Clone(r.ds.Organizations), nil
}

func (r *Repository) GetOrganization(_ context.Context, id int64) (record.Organization, error) {
	if r.Err != nil {
		return record.Organization{}, r.Err
	}
	for _, o := range r.ds.Organizations {
		if o.ID == id {
			return o, nil
		}
	}
	return record.Organization{}, domain.NewNotFound(string(record.KindOrganization), id)
}

func (r *Repository) OrganizationsByID(_ context.Context, ids []int64) ([]record.Organization, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := []record.Organization{}
	for _, o := range r.ds.Organizations {
		if slices.Contains(ids, o.ID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *Repository) ListEvents(_ context.Context) ([]record.Event, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return slices.Clone(r.ds.Events), nil
}

func (r *Repository) GetEvent(_ context.Context, id int64) (record.Event, error) {
	if r.Err != nil {
		return record.Event{}, r.Err
	}
	for _, e := range r.ds.Events {
		if e.ID == id {
			return e, nil
		}
	}
	return record.Event{}, domain.NewNotFound(string(record.KindEvent), id)
}

func (r *Repository) EventsByID(_ context.Context, ids []int64) ([]record.Event, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := []record.Event{}
	for _, e := range r.ds.Events {
		if slices.Contains(ids, e.ID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Repository) EventsByOrganization(_ context.Context, orgID int64) ([]record.Event, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := []record.Event{}
	for _, e := range r.ds.Events {
		if e.OwnedBy(orgID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Repository) ListResources(_ context.Context) ([]record.Resource, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return slices.Clone(r.ds.Resources), nil
}

func (r *Repository) GetResource(_ context.Context, id int64) (record.Resource, error) {
	if r.Err != nil {
		return record.Resource{}, r.Err
	}
	for _, res := range r.ds.Resources {
		if res.ID == id {
			return res, nil
		}
	}
	return record.Resource{}, domain.NewNotFound(string(record.KindResource), id)
}

func (r *Repository) ResourcesByID(_ context.Context, ids []int64) ([]record.Resource, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := []record.Resource{}
	for _, res := range r.ds.Resources {
		if slices.Contains(ids, res.ID) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *Repository) Linked(
	_ context.Context, set record.LinkSet, side record.Side, ids []int64,
) (map[int64][]int64, error) {
	r.LinkedCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[int64][]int64, len(ids))
	for _, l := range r.ds.LinksOf(set) {
		key, other := l.Left, l.Right
		if side == record.Right {
			key, other = l.Right, l.Left
		}
		if slices.Contains(ids, key) {
			out[key] = append(out[key], other)
		}
	}
	for k := range out {
		slices.Sort(out[k])
	}
	return out, nil
}

// Seeded reports whether any organization, event or resource exists.
func (r *Repository) Seeded(_ context.Context) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	return len(r.ds.Organizations)+len(r.ds.Events)+len(r.ds.Resources) > 0, nil
}

// Ping implements health.DBPinger.
func (r *Repository) Ping(_ context.Context) error { return r.Err }
