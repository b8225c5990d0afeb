package catalog

import (
	"time"

	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/domain/search/filter"
	"github.com/immigrow/catalog/internal/domain/search/order"
	"github.com/immigrow/catalog/internal/domain/search/request"
)

type org = record.Organization

var organizations = descriptor[org]{
	kind: record.KindOrganization,
	schema: request.Schema{
		Filters: []filter.Spec{
			{Key: "state", Kind: filter.Exact},
			{Key: "topic", Kind: filter.Substring},
			{Key: "size", Kind: filter.Substring},
		},
		Sort: order.Whitelist{
			Columns:          []string{"name", "city", "state", "topic", "size", "meeting_frequency", "created_at"},
			Default:          "name",
			DefaultDirection: order.Asc,
		},
	},
	id:     func(o *org) int64 { return o.ID },
	values: func(o *org) []string { return o.SearchValues() },
	text: map[string]func(*org) string{
		"state": func(o *org) string { return o.State },
		"topic": func(o *org) string { return o.Topic },
		"size":  func(o *org) string { return o.Size },
	},
	columns: map[string]func(a, b *org) int{
		"name":              compareText(func(o *org) string { return o.Name }),
		"city":              compareText(func(o *org) string { return o.City }),
		"state":             compareText(func(o *org) string { return o.State }),
		"topic":             compareText(func(o *org) string { return o.Topic }),
		"size":              compareText(func(o *org) string { return o.Size }),
		"meeting_frequency": compareText(func(o *org) string { return o.MeetingFrequency }),
		"created_at":        compareTime(func(o *org) time.Time { return o.CreatedAt }),
	},
}

type event = record.Event

var events = descriptor[event]{
	kind: record.KindEvent,
	schema: request.Schema{
		Filters: []filter.Spec{
			{Key: "location", Kind: filter.Substring},
			{Key: "timezone", Kind: filter.Exact},
			{Key: "duration", Kind: filter.Duration},
		},
		Sort: order.Whitelist{
			Columns:          []string{"title", "date", "start_time", "duration_minutes", "location", "city", "state", "created_at"},
			Default:          "date",
			DefaultDirection: order.Asc,
		},
	},
	id:     func(e *event) int64 { return e.ID },
	values: func(e *event) []string { return e.SearchValues() },
	text: map[string]func(*event) string{
		"location": func(e *event) string { return e.Location },
		"timezone": func(e *event) string { return e.Timezone },
	},
	minutes: func(e *event) int { return e.DurationMinutes },
	columns: map[string]func(a, b *event) int{
		"title":            compareText(func(e *event) string { return e.Title }),
		"date":             compareTime(func(e *event) time.Time { return e.Date }),
		"start_time":       compareText(func(e *event) string { return e.StartTime }),
		"duration_minutes": compareInt(func(e *event) int { return e.DurationMinutes }),
		"location":         compareText(func(e *event) string { return e.Location }),
		"city":             compareText(func(e *event) string { return e.City }),
		"state":            compareText(func(e *event) string { return e.State }),
		"created_at":       compareTime(func(e *event) time.Time { return e.CreatedAt }),
	},
}

type resource = record.Resource

var resources = descriptor[resource]{
	kind: record.KindResource,
	schema: request.Schema{
		Filters: []filter.Spec{
			{Key: "topic", Kind: filter.Substring},
			{Key: "scope", Kind: filter.Exact},
			{Key: "court_name", Kind: filter.Substring},
		},
		Sort: order.Whitelist{
			Columns:          []string{"title", "date_published", "topic", "scope", "court_name", "format", "created_at"},
			Default:          "date_published",
			DefaultDirection: order.Desc,
		},
	},
	id:     func(r *resource) int64 { return r.ID },
	values: func(r *resource) []string { return r.SearchValues() },
	text: map[string]func(*resource) string{
		"topic":      func(r *resource) string { return r.Topic },
		"scope":      func(r *resource) string { return string(r.Scope) },
		"court_name": func(r *resource) string { return r.CourtName },
	},
	columns: map[string]func(a, b *resource) int{
		"title":          compareText(func(r *resource) string { return r.Title }),
		"date_published": compareTime(func(r *resource) time.Time { return r.DatePublished }),
		"topic":          compareText(func(r *resource) string { return r.Topic }),
		"scope":          compareText(func(r *resource) string { return string(r.Scope) }),
		"court_name":     compareText(func(r *resource) string { return r.CourtName }),
		"format":         compareText(func(r *resource) string { return r.Format }),
		"created_at":     compareTime(func(r *resource) time.Time { return r.CreatedAt }),
	},
}

// Schema returns the list parameters accepted for kind.
func Schema(kind record.Kind) (request.Schema, bool) {
	switch kind {
	case record.KindOrganization:
		return organizations.schema, true
	case record.KindEvent:
		return events.schema, true
	case record.KindResource:
		return resources.schema, true
	default:
		return request.Schema{}, false
	}
}
