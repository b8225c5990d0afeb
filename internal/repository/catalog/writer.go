package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/immigrow/catalog/internal/db"
	"github.com/immigrow/catalog/internal/domain/record"
)

// Save replaces the stored dataset with ds.
func (r *Repo) Save(ctx context.Context, ds record.Dataset) error {
	if err := r.purge(ctx); err != nil {
		return err
	}

	var hashes []db.HashSetItem
	orgIDs := make([]db.ScoredMember, 0, len(ds.Organizations))
	for i := range ds.Organizations {
		o := &ds.Organizations[i]
		hashes = append(hashes, db.HashSetItem{Key: r.recordKey(record.KindOrganization, o.ID), Fields: organizationFields(o)})
		orgIDs = append(orgIDs, member(o.ID))
	}

	eventIDs := make([]db.ScoredMember, 0, len(ds.Events))
	owned := make(map[int64][]string)
	for i := range ds.Events {
		e := &ds.Events[i]
		hashes = append(hashes, db.HashSetItem{Key: r.recordKey(record.KindEvent, e.ID), Fields: eventFields(e)})
		eventIDs = append(eventIDs, member(e.ID))
		if e.OrganizationID != nil {
			owned[*e.OrganizationID] = append(owned[*e.OrganizationID], strconv.FormatInt(e.ID, 10))
		}
	}

	resourceIDs := make([]db.ScoredMember, 0, len(ds.Resources))
	for i := range ds.Resources {
		res := &ds.Resources[i]
		hashes = append(hashes, db.HashSetItem{Key: r.recordKey(record.KindResource, res.ID), Fields: resourceFields(res)})
		resourceIDs = append(resourceIDs, member(res.ID))
	}

	if err := r.store.HSetMulti(ctx, hashes); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	for kind, ids := range map[record.Kind][]db.ScoredMember{
		record.KindOrganization: orgIDs,
		record.KindEvent:        eventIDs,
		record.KindResource:     resourceIDs,
	} {
		if err := r.store.ZAdd(ctx, r.idsKey(kind), ids); err != nil {
			return fmt.Errorf("index %s: %w", kind, err)
		}
	}

	var sets []db.SetAddItem
	for orgID, evs := range owned {
		sets = append(sets, db.SetAddItem{Key: r.ownerKey(orgID), Members: evs})
	}
	for _, set := range []record.LinkSet{record.EventResources, record.OrganizationResources} {
		for _, l := range ds.LinksOf(set) {
			sets = append(sets,
				db.SetAddItem{Key: r.linkKey(set, record.Left, l.Left), Members: []string{strconv.FormatInt(l.Right, 10)}},
				db.SetAddItem{Key: r.linkKey(set, record.Right, l.Right), Members: []string{strconv.FormatInt(l.Left, 10)}},
			)
		}
	}
	if err := r.store.SAddMulti(ctx, sets); err != nil {
		return fmt.Errorf("write links: %w", err)
	}
	return nil
}

func member(id int64) db.ScoredMember {
	return db.ScoredMember{Score: float64(id), Member: strconv.FormatInt(id, 10)}
}

// purge deletes every key reachable from the current id indexes.
func (r *Repo) purge(ctx context.Context) error {
	var keys []string
	for _, kind := range []record.Kind{record.KindOrganization, record.KindEvent, record.KindResource} {
		members, err := r.store.ZRange(ctx, r.idsKey(kind))
		if err != nil {
			return fmt.Errorf("zrange %s: %w", kind, err)
		}
		for _, id := range parseIDs(members) {
			keys = append(keys, r.recordKey(kind, id))
			switch kind {
			case record.KindOrganization:
				keys = append(keys, r.ownerKey(id), r.linkKey(record.OrganizationResources, record.Left, id))
			case record.KindEvent:
				keys = append(keys, r.linkKey(record.EventResources, record.Left, id))
			case record.KindResource:
				keys = append(keys,
					r.linkKey(record.EventResources, record.Right, id),
					r.linkKey(record.OrganizationResources, record.Right, id))
			}
		}
		keys = append(keys, r.idsKey(kind))
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	return nil
}
