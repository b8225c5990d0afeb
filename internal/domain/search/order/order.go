// Package order resolves column sort requests against per-entity whitelists.
package order

import (
	"fmt"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	// Asc sorts ascending.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// ParseDirection resolves "asc" or "desc", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("sort_order must be asc or desc, got %q", s)
	}
}

// Whitelist is the set of sortable columns of an entity and its default order.
type Whitelist struct {
	Columns          []string
	Default          string
	DefaultDirection Direction
}

// Allows reports whether column is sortable.
func (w Whitelist) Allows(column string) bool {
	for _, c := range w.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Order is a resolved sort: the column actually used, the direction, and the
// sort_by the client asked for.
type Order struct {
	Requested string
	Column    string
	Direction Direction
}

// Resolve picks the effective order. An absent or unknown sortBy falls back to
// the default column. dir, when non-empty, always wins; otherwise a recognized
// column sorts ascending and the fallback uses the default direction.
func (w Whitelist) Resolve(sortBy string, dir Direction) Order {
	sortBy = strings.TrimSpace(sortBy)
	o := Order{Requested: sortBy, Column: sortBy, Direction: dir}
	if sortBy == "" {
		o.Requested = w.Default
	}
	known := w.Allows(sortBy)
	if !known {
		o.Column = w.Default
	}
	if o.Direction == "" {
		if known {
			o.Direction = Asc
		} else {
			o.Direction = w.DefaultDirection
		}
	}
	return o
}

// Descending reports whether the order is descending.
func (o Order) Descending() bool { return o.Direction == Desc }
