package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	HashStore
	SortedSetStore
	SetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ScoredMember is a sorted set entry.
type ScoredMember struct {
	Score  float64
	Member string
}

// SortedSetStore provides ordered id index operations.
type SortedSetStore interface {
	ZAdd(ctx context.Context, key string, members []ScoredMember) error
	ZRange(ctx context.Context, key string) ([]string, error)
	ZCard(ctx context.Context, key string) (int64, error)
}

// SetAddItem holds a single key+members pair for pipelined SADD.
type SetAddItem struct {
	Key     string
	Members []string
}

// SetStore provides unordered membership operations.
type SetStore interface {
	SAddMulti(ctx context.Context, items []SetAddItem) error
	SMembersMulti(ctx context.Context, keys []string) ([][]string, error)
}
