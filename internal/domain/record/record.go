// Package record holds the catalog entities and their association sets.
package record

import "strings"

// Kind identifies one of the three entity collections.
type Kind string

const (
	// KindOrganization is the nonprofit organization collection.
	KindOrganization Kind = "organization"
	// KindEvent is the community event collection.
	KindEvent Kind = "event"
	// KindResource is the legal resource collection.
	KindResource Kind = "resource"
)

// Title returns the display name used in client-facing messages ("Organization").
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Field pairs a searchable attribute name with its accessor.
type Field[T any] struct {
	Name  string
	Value func(*T) string
}

// Searchable exposes the ordered values of an entity's searchable fields.
type Searchable interface {
	SearchValues() []string
}

func collect[T any](rec *T, fields []Field[T]) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := f.Value(rec); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func fieldNames[T any](fields []Field[T]) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
