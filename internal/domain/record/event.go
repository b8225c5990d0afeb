package record

import "time"

// Event is a community event, optionally owned by an Organization.
type Event struct {
	ID              int64
	Title           string
	Date            time.Time
	StartTime       string
	EndTime         string
	DurationMinutes int
	Location        string
	City            string
	State           string
	VenueName       string
	Description     string
	ExternalURL     string
	ImageURL        string
	EventbriteID    string
	Timezone        string
	OrganizationID  *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var eventFields = []Field[Event]{
	{"title", func(e *Event) string { return e.Title }},
	{"location", func(e *Event) string { return e.Location }},
	{"city", func(e *Event) string { return e.City }},
	{"state", func(e *Event) string { return e.State }},
	{"venue_name", func(e *Event) string { return e.VenueName }},
	{"description", func(e *Event) string { return e.Description }},
	{"start_time", func(e *Event) string { return e.StartTime }},
	{"end_time", func(e *Event) string { return e.EndTime }},
	{"timezone", func(e *Event) string { return e.Timezone }},
	{"external_url", func(e *Event) string { return e.ExternalURL }},
	{"eventbrite_id", func(e *Event) string { return e.EventbriteID }},
}

// SearchValues implements Searchable.
func (e *Event) SearchValues() []string { return collect(e, eventFields) }

// EventSearchFields lists the searchable field names in scoring order.
func EventSearchFields() []string { return fieldNames(eventFields) }

// OwnedBy reports whether the event belongs to the given organization.
func (e *Event) OwnedBy(orgID int64) bool {
	return e.OrganizationID != nil && *e.OrganizationID == orgID
}
