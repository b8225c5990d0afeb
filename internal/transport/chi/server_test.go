package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/usecase/catalog"
	"github.com/immigrow/catalog/internal/usecase/catalog/catalogtest"
	healthuc "github.com/immigrow/catalog/internal/usecase/health"
)

type listBody struct {
	Data []struct {
		ID              int64   `json:"id"`
		Date            *string `json:"date"`
		ResourceIDs     []int64 `json:"resource_ids"`
		EventIDs        []int64 `json:"event_ids"`
		OrganizationIDs []int64 `json:"organization_ids"`
	} `json:"data"`
	Total       int               `json:"total"`
	Page        int               `json:"page"`
	PerPage     int               `json:"per_page"`
	TotalPages  int               `json:"total_pages"`
	SearchQuery string            `json:"search_query"`
	Filters     map[string]string `json:"filters"`
	Sort        sortEcho          `json:"sort"`
}

func (b *listBody) ids() []int64 {
	out := make([]int64, len(b.Data))
	for i, d := range b.Data {
		out[i] = d.ID
	}
	return out
}

func newTestServer(repo *catalogtest.Repository, opts ...catalog.Option) http.Handler {
	svc := catalog.New(repo, opts...)
	return NewServer(svc, healthuc.New(repo, repo), zap.NewNop()).Handler()
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestListOrganizations_SearchFilterSortScenario(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	rr := do(t, h, "/api/orgs?search=legal&state=TX&sort_by=name")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := decode[listBody](t, rr)
	if got := body.ids(); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}
	if body.Total != 2 || body.Page != 1 || body.PerPage != 15 || body.TotalPages != 1 {
		t.Errorf("envelope = total %d page %d per_page %d pages %d", body.Total, body.Page, body.PerPage, body.TotalPages)
	}
	if body.SearchQuery != "legal" {
		t.Errorf("search_query = %q", body.SearchQuery)
	}
	if !reflect.DeepEqual(body.Filters, map[string]string{"state": "TX"}) {
		t.Errorf("filters = %v", body.Filters)
	}
	if body.Sort != (sortEcho{SortBy: "name", SortOrder: "asc"}) {
		t.Errorf("sort = %+v", body.Sort)
	}
	if !reflect.DeepEqual(body.Data[0].ResourceIDs, []int64{2}) {
		t.Errorf("org 1 resource_ids = %v", body.Data[0].ResourceIDs)
	}
	if body.Data[1].ResourceIDs == nil || len(body.Data[1].ResourceIDs) != 0 {
		t.Errorf("org 2 resource_ids = %v, want []", body.Data[1].ResourceIDs)
	}
}

func TestListOrganizations_Defaults(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	rr := do(t, h, "/api/orgs")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	raw := rr.Body.String()
	if !strings.Contains(raw, `"filters":{}`) {
		t.Errorf("filters must render as an empty object: %s", raw)
	}
	body := decode[listBody](t, rr)
	if got := body.ids(); !reflect.DeepEqual(got, []int64{4, 3, 2, 1}) {
		t.Errorf("ids = %v, want [4 3 2 1]", got)
	}
	if body.Sort != (sortEcho{SortBy: "name", SortOrder: "asc"}) {
		t.Errorf("sort = %+v", body.Sort)
	}
}

func TestListOrganizations_HugePage(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	for _, pageN := range []string{"4611686018427387905", "9223372036854775807"} {
		rr := do(t, h, "/api/orgs?per_page=2&page="+pageN)
		if rr.Code != http.StatusOK {
			t.Fatalf("page=%s: expected 200, got %d: %s", pageN, rr.Code, rr.Body.String())
		}
		if !strings.Contains(rr.Body.String(), `"data":[]`) {
			t.Errorf("page=%s: data must render as []: %s", pageN, rr.Body.String())
		}
		body := decode[listBody](t, rr)
		if body.Total != 4 || body.TotalPages != 2 {
			t.Errorf("page=%s: envelope = %+v", pageN, body)
		}
	}
}

func TestListOrganizations_OutOfRangePage(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	rr := do(t, h, "/api/orgs?page=9&per_page=2")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"data":[]`) {
		t.Errorf("data must render as []: %s", rr.Body.String())
	}
	body := decode[listBody](t, rr)
	if body.Total != 4 || body.TotalPages != 2 || body.Page != 9 {
		t.Errorf("envelope = %+v", body)
	}
}

func TestListEvents_DurationFilter(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	body := decode[listBody](t, do(t, h, "/api/events?duration=short,long"))
	if got := body.ids(); !reflect.DeepEqual(got, []int64{3, 1}) {
		t.Errorf("ids = %v, want [3 1]", got)
	}
	if body.Data[0].Date == nil || *body.Data[0].Date != "2024-04-15" {
		t.Errorf("date = %v, want 2024-04-15", body.Data[0].Date)
	}
	if body.Filters["duration"] != "short,long" {
		t.Errorf("filters = %v", body.Filters)
	}
	if body.Sort != (sortEcho{SortBy: "date", SortOrder: "asc"}) {
		t.Errorf("sort = %+v", body.Sort)
	}
}

func TestListResources_Defaults(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	body := decode[listBody](t, do(t, h, "/api/resources"))
	if got := body.ids(); !reflect.DeepEqual(got, []int64{2, 1, 3}) {
		t.Errorf("ids = %v, want [2 1 3]", got)
	}
	if body.Sort != (sortEcho{SortBy: "date_published", SortOrder: "desc"}) {
		t.Errorf("sort = %+v", body.Sort)
	}
	// Resource 1 is linked to events 1 and 3 and organization 3.
	r1 := body.Data[1]
	if !reflect.DeepEqual(r1.EventIDs, []int64{1, 3}) || !reflect.DeepEqual(r1.OrganizationIDs, []int64{3}) {
		t.Errorf("resource 1 links = events %v orgs %v", r1.EventIDs, r1.OrganizationIDs)
	}
}

func TestList_InvalidParams(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"zero page", "/api/orgs?page=0", "page must be a positive integer"},
		{"non-numeric per_page", "/api/events?per_page=ten", "per_page must be a positive integer"},
		{"bad sort_order", "/api/resources?sort_order=up", "sort_order must be asc or desc"},
		{"unknown duration", "/api/events?duration=forever", "unknown duration"},
		{"repeated filter", "/api/orgs?state=TX&state=CA", "state must be given at most once"},
		{"long search", "/api/orgs?search=" + strings.Repeat("a", 300), "search must be at most 256 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, tt.target)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
			}
			body := decode[errorResponse](t, rr)
			if !strings.Contains(body.Error, tt.want) {
				t.Errorf("error = %q, want it to contain %q", body.Error, tt.want)
			}
		})
	}
}

func TestList_LenientParams(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()), catalog.WithStrictParams(false))

	rr := do(t, h, "/api/orgs?page=abc&per_page=-3&sort_order=up&state=TX&state=CA")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decode[listBody](t, rr)
	if body.Page != 1 || body.PerPage != 15 {
		t.Errorf("page = %d per_page = %d, want defaults", body.Page, body.PerPage)
	}
	if body.Filters["state"] != "TX" {
		t.Errorf("filters = %v, want first value", body.Filters)
	}
	if got := body.ids(); !reflect.DeepEqual(got, []int64{4, 2, 1}) {
		t.Errorf("ids = %v, want [4 2 1]", got)
	}
}

func TestGetOrganization(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	rr := do(t, h, "/api/orgs/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decode[organizationDetailDTO](t, rr)
	if body.ID != 1 || body.Name != "Texas Legal Aid" {
		t.Errorf("organization = %+v", body.organizationDTO)
	}
	if len(body.Events) != 1 || body.Events[0].ID != 1 {
		t.Errorf("events = %+v", body.Events)
	}
	if len(body.Resources) != 1 || body.Resources[0].ID != 2 {
		t.Errorf("resources = %+v", body.Resources)
	}
}

func TestGetEvent_WithoutOrganization(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	rr := do(t, h, "/api/events/3")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"organization":null`) {
		t.Errorf("organization must be null: %s", rr.Body.String())
	}
	body := decode[eventDetailDTO](t, rr)
	if len(body.Resources) != 1 || body.Resources[0].ID != 1 {
		t.Errorf("resources = %+v", body.Resources)
	}
}

func TestGetEvent_WithOrganization(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	body := decode[eventDetailDTO](t, do(t, h, "/api/events/2"))
	if body.Organization == nil || body.Organization.ID != 2 {
		t.Errorf("organization = %+v", body.Organization)
	}
	if body.Resources == nil || len(body.Resources) != 0 {
		t.Errorf("resources = %v, want []", body.Resources)
	}
}

func TestGetResource(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	body := decode[resourceDetailDTO](t, do(t, h, "/api/resources/1"))
	if len(body.Organizations) != 1 || body.Organizations[0].ID != 3 {
		t.Errorf("organizations = %+v", body.Organizations)
	}
	if len(body.Events) != 2 || body.Events[0].ID != 1 || body.Events[1].ID != 3 {
		t.Errorf("events = %+v", body.Events)
	}
	if body.DatePublished == nil || *body.DatePublished != "2021-06-01" {
		t.Errorf("date_published = %v", body.DatePublished)
	}
}

func TestGet_NotFound(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	tests := []struct {
		target string
		want   string
	}{
		{"/api/orgs/99", "Organization not found"},
		{"/api/events/abc", "Event not found"},
		{"/api/resources/0", "Resource not found"},
		{"/api/resources/-4", "Resource not found"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rr := do(t, h, tt.target)
			if rr.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rr.Code)
			}
			if body := decode[errorResponse](t, rr); body.Error != tt.want {
				t.Errorf("error = %q, want %q", body.Error, tt.want)
			}
		})
	}
}

func TestRepositoryError_IsInternal(t *testing.T) {
	repo := catalogtest.NewRepository(catalogtest.Fixture())
	repo.Err = errors.New("connection reset by peer")
	h := newTestServer(repo)

	for _, target := range []string{"/api/orgs", "/api/events/1"} {
		rr := do(t, h, target)
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", target, rr.Code)
		}
		if body := decode[errorResponse](t, rr); body.Error != "internal error" {
			t.Errorf("%s: error = %q, internal details must not leak", target, body.Error)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	repo := catalogtest.NewRepository(catalogtest.Fixture())
	h := newTestServer(repo)

	rr := do(t, h, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decode[healthResponse](t, rr)
	if body.Status != "ok" || body.Checks["database"] != "ok" || body.Checks["catalog"] != "ok" {
		t.Errorf("health = %+v", body)
	}

	repo.Err = errors.New("down")
	rr = do(t, h, "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if body := decode[healthResponse](t, rr); body.Status != "error" {
		t.Errorf("status = %q", body.Status)
	}
}

func TestHealthCheck_EmptyCatalog(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(record.Dataset{}))
	rr := do(t, h, "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if body := decode[healthResponse](t, rr); body.Status != "degraded" || body.Checks["catalog"] != "empty" {
		t.Errorf("health = %+v", body)
	}
}

func TestRootAndUnknownRoute(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))

	rr := do(t, h, "/")
	if rr.Code != http.StatusOK || !strings.HasPrefix(rr.Body.String(), "Hello!") {
		t.Errorf("root = %d %q", rr.Code, rr.Body.String())
	}

	rr = do(t, h, "/api/unknown")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body := decode[errorResponse](t, rr); body.Error != "not found" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(catalogtest.NewRepository(catalogtest.Fixture()))
	rr := do(t, h, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
