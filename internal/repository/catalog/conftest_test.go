package catalog

import (
	"context"
	"maps"
	"slices"
	"sort"

	"github.com/immigrow/catalog/internal/db"
)

// memStore is an in-memory implementation of the consumer interface.
type memStore struct {
	hashes map[string]map[string]string
	zsets  map[string]map[string]float64
	sets   map[string]map[string]bool

	// err, when set, is returned by every call.
	err error
}

func newMemStore() *memStore {
	return &memStore{
		hashes: map[string]map[string]string{},
		zsets:  map[string]map[string]float64{},
		sets:   map[string]map[string]bool{},
	}
}

func (m *memStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	if m.err != nil {
		return m.err
	}
	for _, it := range items {
		h := m.hashes[it.Key]
		if h == nil {
			h = map[string]string{}
			m.hashes[it.Key] = h
		}
		maps.Copy(h, it.Fields)
	}
	return nil
}

func (m *memStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	h, ok := m.hashes[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return maps.Clone(h), nil
}

func (m *memStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = maps.Clone(m.hashes[k])
		if out[i] == nil {
			out[i] = map[string]string{}
		}
	}
	return out, nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	if m.err != nil {
		return m.err
	}
	for _, k := range keys {
		delete(m.hashes, k)
		delete(m.zsets, k)
		delete(m.sets, k)
	}
	return nil
}

func (m *memStore) ZAdd(_ context.Context, key string, members []db.ScoredMember) error {
	if m.err != nil {
		return m.err
	}
	z := m.zsets[key]
	if z == nil {
		z = map[string]float64{}
		m.zsets[key] = z
	}
	for _, sm := range members {
		z[sm.Member] = sm.Score
	}
	return nil
}

func (m *memStore) ZRange(_ context.Context, key string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	z := m.zsets[key]
	members := slices.Collect(maps.Keys(z))
	sort.Slice(members, func(i, j int) bool { return z[members[i]] < z[members[j]] })
	return members, nil
}

func (m *memStore) ZCard(_ context.Context, key string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.zsets[key])), nil
}

func (m *memStore) SAddMulti(_ context.Context, items []db.SetAddItem) error {
	if m.err != nil {
		return m.err
	}
	for _, it := range items {
		s := m.sets[it.Key]
		if s == nil {
			s = map[string]bool{}
			m.sets[it.Key] = s
		}
		for _, mem := range it.Members {
			s[mem] = true
		}
	}
	return nil
}

func (m *memStore) SMembersMulti(_ context.Context, keys []string) ([][]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]string, len(keys))
	for i, k := range keys {
		out[i] = slices.Collect(maps.Keys(m.sets[k]))
	}
	return out, nil
}
