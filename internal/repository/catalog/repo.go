package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/immigrow/catalog/internal/db"
	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/record"
)

// store is the consumer interface for the catalog (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	ZAdd(ctx context.Context, key string, members []db.ScoredMember) error
	ZRange(ctx context.Context, key string) ([]string, error)
	ZCard(ctx context.Context, key string) (int64, error)
	SAddMulti(ctx context.Context, items []db.SetAddItem) error
	SMembersMulti(ctx context.Context, keys []string) ([][]string, error)
}

// Repo implements usecase/catalog.Repository and usecase/ingest.Writer over hashes.
// Each record is a hash; a sorted set per collection (score = id) keeps natural
// order; plain sets hold event ownership and both directions of every link set.
type Repo struct {
	store  store
	prefix string
}

// New creates a catalog repository. An empty prefix uses domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) ListOrganizations(ctx context.Context) ([]record.Organization, error) {
	return listAll(ctx, r, record.KindOrganization, parseOrganization)
}

func (r *Repo) GetOrganization(ctx context.Context, id int64) (record.Organization, error) {
	return getOne(ctx, r, record.KindOrganization, id, parseOrganization)
}

func (r *Repo) OrganizationsByID(ctx context.Context, ids []int64) ([]record.Organization, error) {
	return byIDs(ctx, r, record.KindOrganization, ids, parseOrganization)
}

func (r *Repo) ListEvents(ctx context.Context) ([]record.Event, error) {
	return listAll(ctx, r, record.KindEvent, parseEvent)
}

func (r *Repo) GetEvent(ctx context.Context, id int64) (record.Event, error) {
	return getOne(ctx, r, record.KindEvent, id, parseEvent)
}

func (r *Repo) EventsByID(ctx context.Context, ids []int64) ([]record.Event, error) {
	return byIDs(ctx, r, record.KindEvent, ids, parseEvent)
}

// EventsByOrganization returns the events owned by orgID, ascending id.
func (r *Repo) EventsByOrganization(ctx context.Context, orgID int64) ([]record.Event, error) {
	sets, err := r.store.SMembersMulti(ctx, []string{r.ownerKey(orgID)})
	if err != nil {
		return nil, fmt.Errorf("smembers owner %d: %w", orgID, err)
	}
	var members []string
	if len(sets) > 0 {
		members = sets[0]
	}
	return r.EventsByID(ctx, parseIDs(members))
}

func (r *Repo) ListResources(ctx context.Context) ([]record.Resource, error) {
	return listAll(ctx, r, record.KindResource, parseResource)
}

func (r *Repo) GetResource(ctx context.Context, id int64) (record.Resource, error) {
	return getOne(ctx, r, record.KindResource, id, parseResource)
}

func (r *Repo) ResourcesByID(ctx context.Context, ids []int64) ([]record.Resource, error) {
	return byIDs(ctx, r, record.KindResource, ids, parseResource)
}

// Linked resolves one side of a link set for all ids in a single round-trip.
func (r *Repo) Linked(
	ctx context.Context, set record.LinkSet, side record.Side, ids []int64,
) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.linkKey(set, side, id)
	}
	sets, err := r.store.SMembersMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", set, err)
	}
	for i, members := range sets {
		if len(members) == 0 {
			continue
		}
		out[ids[i]] = parseIDs(members)
	}
	return out, nil
}

// Seeded reports whether any collection holds records.
func (r *Repo) Seeded(ctx context.Context) (bool, error) {
	for _, k := range []record.Kind{record.KindOrganization, record.KindEvent, record.KindResource} {
		n, err := r.store.ZCard(ctx, r.idsKey(k))
		if err != nil {
			return false, fmt.Errorf("zcard %s: %w", k, err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func listAll[T any](
	ctx context.Context, r *Repo, kind record.Kind, parse func(fields) T,
) ([]T, error) {
	members, err := r.store.ZRange(ctx, r.idsKey(kind))
	if err != nil {
		return nil, fmt.Errorf("zrange %s: %w", kind, err)
	}
	return load(ctx, r, kind, parseIDs(members), parse)
}

func getOne[T any](
	ctx context.Context, r *Repo, kind record.Kind, id int64, parse func(fields) T,
) (T, error) {
	var zero T
	key := r.recordKey(kind, id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return zero, domain.NewNotFound(string(kind), id)
		}
		return zero, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return parse(m), nil
}

func byIDs[T any](
	ctx context.Context, r *Repo, kind record.Kind, ids []int64, parse func(fields) T,
) ([]T, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return load(ctx, r, kind, slices.Compact(sorted), parse)
}

// load fetches hashes for ids in order, skipping ids whose hash is gone.
func load[T any](
	ctx context.Context, r *Repo, kind record.Kind, ids []int64, parse func(fields) T,
) ([]T, error) {
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(kind, id)
	}
	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", kind, err)
	}
	for _, m := range maps {
		if len(m) == 0 {
			continue
		}
		out = append(out, parse(m))
	}
	return out, nil
}

// parseIDs converts members to ascending ids, dropping malformed entries.
func parseIDs(members []string) []int64 {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		if id, err := strconv.ParseInt(m, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
