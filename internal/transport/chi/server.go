package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/domain/search/page"
	"github.com/immigrow/catalog/internal/domain/search/request"
	"github.com/immigrow/catalog/internal/usecase/catalog"
	healthuc "github.com/immigrow/catalog/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the read-only catalog API.
type Server struct {
	catalog       *catalog.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(catalogSvc *catalog.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		catalog: catalogSvc,
		health:  health,
		logger:  logger,
		errorHandlers: []errorHandler{
			notFoundHandler,
			invalidQueryHandler,
		},
	}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/orgs", s.ListOrganizations)
		r.Get("/orgs/{id}", s.GetOrganization)
		r.Get("/events", s.ListEvents)
		r.Get("/events/{id}", s.GetEvent)
		r.Get("/resources", s.ListResources)
		r.Get("/resources/{id}", s.GetResource)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Handler returns a router with every route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello!\n"))
}

// ListOrganizations handles GET /api/orgs.
func (s *Server) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, record.KindOrganization, s.catalog.ListOrganizations, organizationItemToDTO)
}

// ListEvents handles GET /api/events.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, record.KindEvent, s.catalog.ListEvents, eventItemToDTO)
}

// ListResources handles GET /api/resources.
func (s *Server) ListResources(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, record.KindResource, s.catalog.ListResources, resourceItemToDTO)
}

// GetOrganization handles GET /api/orgs/{id}.
func (s *Server) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := bindID(r)
	if !ok {
		writeNotFound(w, record.KindOrganization)
		return
	}
	d, err := s.catalog.GetOrganization(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, organizationDetailToDTO(&d))
}

// GetEvent handles GET /api/events/{id}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := bindID(r)
	if !ok {
		writeNotFound(w, record.KindEvent)
		return
	}
	d, err := s.catalog.GetEvent(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventDetailToDTO(&d))
}

// GetResource handles GET /api/resources/{id}.
func (s *Server) GetResource(w http.ResponseWriter, r *http.Request) {
	id, ok := bindID(r)
	if !ok {
		writeNotFound(w, record.KindResource)
		return
	}
	d, err := s.catalog.GetResource(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resourceDetailToDTO(&d))
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func serveList[T, D any](
	s *Server, w http.ResponseWriter, r *http.Request,
	kind record.Kind,
	run func(context.Context, *request.Request) (page.Page[T], error),
	conv func(T) D,
) {
	schema, _ := catalog.Schema(kind)
	params, err := bindListParams(r, schema, s.catalog.StrictParams())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	req, err := s.catalog.NewRequest(kind, params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	p, err := run(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope(&req, p, conv))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeNotFound(w http.ResponseWriter, kind record.Kind) {
	writeError(w, http.StatusNotFound, kind.Title()+" not found")
}

func notFoundHandler(w http.ResponseWriter, err error) bool {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		writeNotFound(w, record.Kind(nf.Entity))
		return true
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return true
	}
	return false
}

func invalidQueryHandler(w http.ResponseWriter, err error) bool {
	var iq *domain.InvalidQueryError
	if errors.As(err, &iq) {
		writeError(w, http.StatusBadRequest, iq.Reason)
		return true
	}
	if errors.Is(err, domain.ErrInvalidQuery) {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidQuery.Error())
		return true
	}
	return false
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
