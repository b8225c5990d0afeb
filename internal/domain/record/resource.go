package record

import (
	"strings"
	"time"
)

// Scope is the jurisdiction level of a legal resource.
type Scope string

// Resource scopes.
const (
	ScopeFederal Scope = "Federal"
	ScopeState   Scope = "State"
	ScopeLocal   Scope = "Local"
)

// ParseScope matches a scope name case-insensitively.
func ParseScope(s string) (Scope, bool) {
	for _, sc := range []Scope{ScopeFederal, ScopeState, ScopeLocal} {
		if strings.EqualFold(string(sc), strings.TrimSpace(s)) {
			return sc, true
		}
	}
	return "", false
}

// Resource is a legal resource such as a court opinion.
type Resource struct {
	ID              int64
	Title           string
	DatePublished   time.Time
	Topic           string
	Scope           Scope
	Description     string
	Format          string
	CourtName       string
	Citation        string
	ExternalURL     string
	ImageURL        string
	AudioURL        string
	CourtListenerID string
	DocketNumber    string
	JudgeName       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var resourceFields = []Field[Resource]{
	{"title", func(r *Resource) string { return r.Title }},
	{"topic", func(r *Resource) string { return r.Topic }},
	{"scope", func(r *Resource) string { return string(r.Scope) }},
	{"description", func(r *Resource) string { return r.Description }},
	{"format", func(r *Resource) string { return r.Format }},
	{"court_name", func(r *Resource) string { return r.CourtName }},
	{"citation", func(r *Resource) string { return r.Citation }},
	{"docket_number", func(r *Resource) string { return r.DocketNumber }},
	{"judge_name", func(r *Resource) string { return r.JudgeName }},
	{"external_url", func(r *Resource) string { return r.ExternalURL }},
	{"courtlistener_id", func(r *Resource) string { return r.CourtListenerID }},
}

// SearchValues implements Searchable.
func (r *Resource) SearchValues() []string { return collect(r, resourceFields) }

// ResourceSearchFields lists the searchable field names in scoring order.
func ResourceSearchFields() []string { return fieldNames(resourceFields) }
