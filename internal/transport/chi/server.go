// Package chi exposes the catalog session over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/caselens/internal/domain/catalog"
	healthuc "github.com/kailas-cloud/caselens/internal/usecase/health"
	sessionuc "github.com/kailas-cloud/caselens/internal/usecase/session"
)

// Facets describes the fixed facet controls offered to clients.
type Facets struct {
	PolicyAreas []string
	YearFrom    int
	YearTo      int
}

// Server routes catalog requests to the session controller.
type Server struct {
	session *sessionuc.Controller
	health  *healthuc.Service
	facets  Facets
	logger  *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(
	session *sessionuc.Controller,
	health *healthuc.Service,
	facets Facets,
	logger *zap.Logger,
) *Server {
	return &Server{session: session, health: health, facets: facets, logger: logger}
}

// Routes registers all endpoints on a fresh sub-router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/view", s.getView)
	r.Get("/api/facets", s.getFacets)
	r.Post("/api/search", s.postSearch)
	r.Post("/api/clear", s.postClear)
	r.Put("/api/filters", s.putFilters)
	r.Put("/api/sort", s.putSort)
	r.Put("/api/page", s.putPage)

	r.Get("/healthz", s.getLiveness)
	r.Get("/readyz", s.getReadiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// getView handles GET /api/view.
func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewFromSnapshot(s.session.Snapshot()))
}

// getFacets handles GET /api/facets.
func (s *Server) getFacets(w http.ResponseWriter, r *http.Request) {
	years := make([]int, 0, s.facets.YearTo-s.facets.YearFrom+1)
	for y := s.facets.YearTo; y >= s.facets.YearFrom; y-- {
		years = append(years, y)
	}
	writeJSON(w, http.StatusOK, facetsResponse{
		PolicyAreas: s.facets.PolicyAreas,
		Years:       years,
	})
}

// postSearch handles POST /api/search. A failed backend call leaves the view
// untouched; the 502 body lets API consumers see that it happened.
func (s *Server) postSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.session.Submit(r.Context(), req.Query); err != nil {
		writeError(w, http.StatusBadGateway, codeSearchFailed, "search failed, showing previous results")
		return
	}

	writeJSON(w, http.StatusOK, viewFromSnapshot(s.session.Snapshot()))
}

// postClear handles POST /api/clear.
func (s *Server) postClear(w http.ResponseWriter, r *http.Request) {
	s.session.Clear()
	writeJSON(w, http.StatusOK, viewFromSnapshot(s.session.Snapshot()))
}

// putFilters handles PUT /api/filters. Both dimensions are set together;
// an empty value clears that dimension.
func (s *Server) putFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.session.SetYear(req.Year)
	s.session.SetPolicyArea(req.PolicyArea)
	writeJSON(w, http.StatusOK, viewFromSnapshot(s.session.Snapshot()))
}

// putSort handles PUT /api/sort.
func (s *Server) putSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	mode, err := catalog.ParseSortMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	s.session.SetSortMode(mode)
	writeJSON(w, http.StatusOK, viewFromSnapshot(s.session.Snapshot()))
}

// putPage handles PUT /api/page. An out-of-range page number is silently
// ignored: the response is the unchanged current view.
func (s *Server) putPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.session.GoToPage(req.Page); err != nil {
		if !errors.Is(err, catalog.ErrPageOutOfRange) {
			s.logger.Error("page jump failed", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, viewFromSnapshot(s.session.Snapshot()))
}

// getLiveness handles GET /healthz.
func (s *Server) getLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getReadiness handles GET /readyz.
func (s *Server) getReadiness(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
