package request

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/search/filter"
	"github.com/immigrow/catalog/internal/domain/search/order"
	"github.com/immigrow/catalog/internal/domain/search/score"
)

// Default list parameter limits.
const (
	DefaultPerPage   = 15
	MaxPerPage       = 100
	MaxSearchLength  = 256
	MaxSearchTokens  = 16
	DefaultPageIndex = 1
)

// Limits bounds the cost of a list request.
type Limits struct {
	DefaultPerPage  int
	MaxPerPage      int
	MaxSearchLength int
	MaxSearchTokens int
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{
		DefaultPerPage:  DefaultPerPage,
		MaxPerPage:      MaxPerPage,
		MaxSearchLength: MaxSearchLength,
		MaxSearchTokens: MaxSearchTokens,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.DefaultPerPage <= 0 {
		l.DefaultPerPage = d.DefaultPerPage
	}
	if l.MaxPerPage <= 0 {
		l.MaxPerPage = d.MaxPerPage
	}
	if l.DefaultPerPage > l.MaxPerPage {
		l.DefaultPerPage = l.MaxPerPage
	}
	if l.MaxSearchLength <= 0 {
		l.MaxSearchLength = d.MaxSearchLength
	}
	if l.MaxSearchTokens <= 0 {
		l.MaxSearchTokens = d.MaxSearchTokens
	}
	return l
}

// Schema describes the list parameters an entity accepts.
type Schema struct {
	Filters []filter.Spec
	Sort    order.Whitelist
}

// Params are the raw list query parameters.
type Params struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      string
	PerPage   string
	Filters   map[string]string
}

// Request is a validated list query.
type Request struct {
	search  string
	query   score.Query
	filters filter.Expression
	order   order.Order
	page    int
	perPage int
}

// New validates and normalizes list parameters against schema.
// In strict mode malformed values are rejected with domain.ErrInvalidQuery;
// otherwise they fall back to defaults. per_page is always clamped to the limit.
func New(p Params, schema Schema, limits Limits, strict bool) (Request, error) {
	limits = limits.withDefaults()

	pageN, err := positiveInt("page", p.Page, DefaultPageIndex, strict)
	if err != nil {
		return Request{}, err
	}
	perPage, err := positiveInt("per_page", p.PerPage, limits.DefaultPerPage, strict)
	if err != nil {
		return Request{}, err
	}
	if perPage > limits.MaxPerPage {
		perPage = limits.MaxPerPage
	}

	var dir order.Direction
	if s := strings.TrimSpace(p.SortOrder); s != "" {
		d, err := order.ParseDirection(s)
		if err != nil && strict {
			return Request{}, domain.NewInvalidQuery("sort_order", err.Error())
		}
		dir = d
	}

	search := strings.TrimSpace(p.Search)
	if utf8.RuneCountInString(search) > limits.MaxSearchLength {
		if strict {
			return Request{}, domain.NewInvalidQuery("search", "search must be at most "+strconv.Itoa(limits.MaxSearchLength)+" characters")
		}
		search = strings.TrimSpace(truncateRunes(search, limits.MaxSearchLength))
	}
	if strict && len(score.Tokenize(search)) > limits.MaxSearchTokens {
		return Request{}, domain.NewInvalidQuery("search", "search must have at most "+strconv.Itoa(limits.MaxSearchTokens)+" words")
	}

	filters, err := filter.Parse(p.Filters, schema.Filters, strict)
	if err != nil {
		return Request{}, domain.NewInvalidQuery("filters", err.Error())
	}

	return Request{
		search:  search,
		query:   score.Parse(search, limits.MaxSearchTokens),
		filters: filters,
		order:   schema.Sort.Resolve(p.SortBy, dir),
		page:    pageN,
		perPage: perPage,
	}, nil
}

func positiveInt(name, raw string, def int, strict bool) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		if strict {
			return 0, domain.NewInvalidQuery(name, name+" must be a positive integer")
		}
		return def, nil
	}
	return n, nil
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Search returns the trimmed search text, empty when absent.
func (r *Request) Search() string { return r.search }

// Query returns the parsed search query.
func (r *Request) Query() score.Query { return r.query }

// HasSearch reports whether relevance ranking applies.
func (r *Request) HasSearch() bool { return !r.query.IsEmpty() }

// Filters returns the attribute filter expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// Order returns the resolved column sort.
func (r *Request) Order() order.Order { return r.order }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PerPage returns the page size.
func (r *Request) PerPage() int { return r.perPage }
