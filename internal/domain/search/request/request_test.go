package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/search/filter"
	"github.com/immigrow/catalog/internal/domain/search/order"
)

var eventSchema = Schema{
	Filters: []filter.Spec{
		{Key: "location", Kind: filter.Substring},
		{Key: "timezone", Kind: filter.Exact},
		{Key: "duration", Kind: filter.Duration},
	},
	Sort: order.Whitelist{
		Columns:          []string{"title", "date"},
		Default:          "date",
		DefaultDirection: order.Asc,
	},
}

func TestNew_Defaults(t *testing.T) {
	r, err := New(Params{}, eventSchema, DefaultLimits(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Page() != 1 {
		t.Errorf("Page() = %d, want 1", r.Page())
	}
	if r.PerPage() != DefaultPerPage {
		t.Errorf("PerPage() = %d, want %d", r.PerPage(), DefaultPerPage)
	}
	if r.HasSearch() {
		t.Error("HasSearch() = true")
	}
	if !r.Filters().IsEmpty() {
		t.Error("Filters() not empty")
	}
	o := r.Order()
	if o.Column != "date" || o.Direction != order.Asc || o.Requested != "date" {
		t.Errorf("Order() = %+v", o)
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	r, err := New(Params{
		Search:    "  Legal Aid ",
		SortBy:    "title",
		SortOrder: "DESC",
		Page:      "3",
		PerPage:   "20",
		Filters:   map[string]string{"timezone": "America/Chicago", "duration": "short"},
	}, eventSchema, DefaultLimits(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Search() != "Legal Aid" {
		t.Errorf("Search() = %q", r.Search())
	}
	if got := strings.Join(r.Query().Tokens(), " "); got != "legal aid" {
		t.Errorf("Query().Tokens() = %q", got)
	}
	if r.Page() != 3 || r.PerPage() != 20 {
		t.Errorf("Page/PerPage = %d/%d", r.Page(), r.PerPage())
	}
	if o := r.Order(); o.Column != "title" || o.Direction != order.Desc {
		t.Errorf("Order() = %+v", o)
	}
	if len(r.Filters().Conditions()) != 2 {
		t.Errorf("Conditions() = %d, want 2", len(r.Filters().Conditions()))
	}
}

func TestNew_PerPageClamped(t *testing.T) {
	for _, strict := range []bool{true, false} {
		r, err := New(Params{PerPage: "1000"}, eventSchema, DefaultLimits(), strict)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.PerPage() != MaxPerPage {
			t.Errorf("strict=%v: PerPage() = %d, want %d", strict, r.PerPage(), MaxPerPage)
		}
	}
}

func TestNew_StrictRejects(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantMsg string
	}{
		{"page not a number", Params{Page: "abc"}, "page must be a positive integer"},
		{"page zero", Params{Page: "0"}, "page must be a positive integer"},
		{"page negative", Params{Page: "-2"}, "page must be a positive integer"},
		{"per_page zero", Params{PerPage: "0"}, "per_page must be a positive integer"},
		{"bad sort_order", Params{SortOrder: "up"}, "sort_order"},
		{"unknown duration", Params{Filters: map[string]string{"duration": "forever"}}, "unknown duration"},
		{"search too long", Params{Search: strings.Repeat("a", MaxSearchLength+1)}, "at most"},
		{"too many words", Params{Search: strings.Repeat("w ", MaxSearchTokens+1)}, "words"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params, eventSchema, DefaultLimits(), true)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Errorf("error = %v, want ErrInvalidQuery", err)
			}
			var iq *domain.InvalidQueryError
			if !errors.As(err, &iq) {
				t.Fatalf("error is not *InvalidQueryError: %T", err)
			}
			if !strings.Contains(iq.Reason, tt.wantMsg) {
				t.Errorf("Reason = %q, want substring %q", iq.Reason, tt.wantMsg)
			}
		})
	}
}

func TestNew_LenientFallback(t *testing.T) {
	r, err := New(Params{
		Page:      "abc",
		PerPage:   "-5",
		SortOrder: "up",
		Filters:   map[string]string{"duration": "forever"},
	}, eventSchema, DefaultLimits(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Page() != 1 || r.PerPage() != DefaultPerPage {
		t.Errorf("Page/PerPage = %d/%d", r.Page(), r.PerPage())
	}
	if r.Order().Direction != order.Asc {
		t.Errorf("Direction = %q", r.Order().Direction)
	}
	if !r.Filters().IsEmpty() {
		t.Error("unknown duration should be dropped")
	}
}

func TestNew_LenientTruncatesSearch(t *testing.T) {
	limits := Limits{MaxSearchLength: 10, MaxSearchTokens: 2}
	r, err := New(Params{Search: "alpha beta gamma delta"}, eventSchema, limits, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Search() != "alpha beta" {
		t.Errorf("Search() = %q", r.Search())
	}
	if got := r.Query().Tokens(); len(got) != 2 {
		t.Errorf("Tokens() = %v", got)
	}
}

func TestNew_UnknownSortByFallsBack(t *testing.T) {
	r, err := New(Params{SortBy: "popularity"}, eventSchema, DefaultLimits(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := r.Order()
	if o.Requested != "popularity" || o.Column != "date" {
		t.Errorf("Order() = %+v", o)
	}
}

func TestNew_PunctuationOnlySearch(t *testing.T) {
	r, err := New(Params{Search: "?!"}, eventSchema, DefaultLimits(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasSearch() {
		t.Error("query without tokens must not rank")
	}
	if r.Search() != "?!" {
		t.Errorf("Search() = %q", r.Search())
	}
}

func TestLimits_WithDefaults(t *testing.T) {
	l := Limits{DefaultPerPage: 50, MaxPerPage: 20}.withDefaults()
	if l.DefaultPerPage != 20 {
		t.Errorf("DefaultPerPage = %d, want clamped to 20", l.DefaultPerPage)
	}
	if l.MaxSearchLength != MaxSearchLength || l.MaxSearchTokens != MaxSearchTokens {
		t.Errorf("limits = %+v", l)
	}
}
