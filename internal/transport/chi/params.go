package chi

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/search/request"
)

// Query parameter names shared by every list endpoint.
const (
	paramSearch    = "search"
	paramSortBy    = "sort_by"
	paramSortOrder = "sort_order"
	paramPage      = "page"
	paramPerPage   = "per_page"
)

// bindListParams reads the list parameters of schema from the query string.
// In strict mode a repeated parameter is rejected; otherwise the first value wins.
func bindListParams(r *http.Request, schema request.Schema, strict bool) (request.Params, error) {
	q := r.URL.Query()
	p := request.Params{Filters: make(map[string]string, len(schema.Filters))}

	targets := []struct {
		name string
		dest *string
	}{
		{paramSearch, &p.Search},
		{paramSortBy, &p.SortBy},
		{paramSortOrder, &p.SortOrder},
		{paramPage, &p.Page},
		{paramPerPage, &p.PerPage},
	}
	for _, t := range targets {
		v, err := queryString(q, t.name, strict)
		if err != nil {
			return request.Params{}, err
		}
		*t.dest = v
	}

	for _, spec := range schema.Filters {
		v, err := queryString(q, spec.Key, strict)
		if err != nil {
			return request.Params{}, err
		}
		if v != "" {
			p.Filters[spec.Key] = v
		}
	}
	return p, nil
}

func queryString(q url.Values, name string, strict bool) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		if strict {
			return "", domain.NewInvalidQuery(name, name+" must be given at most once")
		}
		return q.Get(name), nil
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// bindID parses the {id} path segment. ok is false for anything but a positive integer.
func bindID(r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
