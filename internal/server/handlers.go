package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chartdeck/internal/charts"
	"chartdeck/internal/config"
	"chartdeck/internal/dashboard"
	"chartdeck/internal/models"
	"chartdeck/internal/snapshot"
)

// HandleRoot lists the API entry points
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "chartdeck",
		"version": config.GetVersion(),
		"endpoints": []string{
			"/health", "/api/catalog", "/api/layout", "/api/state", "/api/filters",
			"/api/backend", "/api/theme/toggle", "/api/cache/clear", "/api/charts/{kind}",
			"/api/snapshots/{kind}.png", "/api/exports", "/metrics",
		},
	})
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"checks": map[string]string{
			"storage": s.Config.StorageMode,
			"config":  "ok",
		},
	})
}

// KindInfo describes one catalog entry
type KindInfo struct {
	Kind   models.ChartKind        `json:"kind"`
	Title  string                  `json:"title"`
	Native map[models.Backend]bool `json:"native"`
}

// Catalog lists everything a client can select
type Catalog struct {
	Kinds      []KindInfo       `json:"kinds"`
	TimeRanges []models.Option  `json:"timeRanges"`
	Categories []models.Option  `json:"categories"`
	Regions    []models.Option  `json:"regions"`
	Backends   []models.Backend `json:"backends"`
}

func buildCatalog() Catalog {
	c := Catalog{
		TimeRanges: models.TimeRangeOptions,
		Categories: models.CategoryOptions,
		Regions:    models.RegionOptions,
		Backends:   models.AllBackends,
	}
	for _, kind := range models.AllKinds {
		info := KindInfo{Kind: kind, Title: kind.Title(), Native: make(map[models.Backend]bool)}
		for _, b := range models.AllBackends {
			if a, err := charts.For(b); err == nil {
				info.Native[b] = a.Native(kind)
			}
		}
		c.Kinds = append(c.Kinds, info)
	}
	return c
}

// HandleCatalog returns chart kinds, filter options and backends
func (s *Server) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildCatalog())
}

// HandleLayout returns the default widget grid
func (s *Server) HandleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Layout)
}

// State is the dashboard selection as reported to clients
type State struct {
	Filters  models.FilterState                         `json:"filters"`
	Defaults models.FilterState                         `json:"defaults"`
	Backend  models.Backend                             `json:"backend"`
	Theme    models.Theme                               `json:"theme"`
	Cache    dashboard.Stats                            `json:"cache"`
	Widgets  map[models.ChartKind]dashboard.WidgetState `json:"widgets"`
}

func (s *Server) state() State {
	d := s.Dashboard
	st := State{
		Filters:  d.Filters(),
		Defaults: d.Defaults(),
		Backend:  d.Backend(),
		Theme:    d.Theme(),
		Cache:    d.Stats(),
		Widgets:  make(map[models.ChartKind]dashboard.WidgetState, len(models.AllKinds)),
	}
	for _, kind := range models.AllKinds {
		st.Widgets[kind] = d.WidgetState(kind)
	}
	return st
}

// HandleState returns filters, backend, theme and cache statistics
func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

// filtersRequest is a partial filter update; omitted fields keep their value
type filtersRequest struct {
	TimeRange *string `json:"timeRange"`
	Category  *string `json:"category"`
	Region    *string `json:"region"`
}

// HandleSetFilters applies a partial filter update. Every field is validated
// before anything changes, and the cache is cleared even when nothing differs.
func (s *Server) HandleSetFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	next := s.Dashboard.Filters()
	if req.TimeRange != nil {
		tr, err := models.ParseTimeRange(*req.TimeRange)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.TimeRange = tr
	}
	if req.Category != nil {
		c, err := models.ParseCategory(*req.Category)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.Category = c
	}
	if req.Region != nil {
		rg, err := models.ParseRegion(*req.Region)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.Region = rg
	}

	if err := s.Dashboard.SetFilters(next); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

// HandleResetFilters restores the configured default filters
func (s *Server) HandleResetFilters(w http.ResponseWriter, r *http.Request) {
	s.Dashboard.ResetFilters()
	writeJSON(w, http.StatusOK, s.state())
}

type backendRequest struct {
	Backend string `json:"backend"`
}

// HandleSetBackend switches the rendering backend
func (s *Server) HandleSetBackend(w http.ResponseWriter, r *http.Request) {
	var req backendRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := models.ParseBackend(req.Backend)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Dashboard.SetBackend(b); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

// HandleToggleTheme flips and persists the theme. Cached payloads keep the
// styling they were built with until the next filter or backend change.
func (s *Server) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	dark, err := s.Theme.Toggle(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Theme{Dark: dark})
}

// HandleClearCache drops every cached payload
func (s *Server) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	s.Dashboard.Invalidate()
	writeJSON(w, http.StatusOK, s.Dashboard.Stats())
}

// HandleChart returns the payload for a chart kind under the active backend.
// Unknown kinds yield an empty object rather than an error.
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	widget := s.Dashboard.Widget(models.ChartKind(r.PathValue("kind")))

	w.Header().Set("X-Chart-Backend", string(widget.Backend))
	w.Header().Set("X-Widget-State", widget.State.String())
	writeJSON(w, http.StatusOK, widget.Payload)
}

// HandleSnapshot renders GET /api/snapshots/{kind}.png from the cached
// dataset, so random kinds match the payload served for the active backend
func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	name, ok := strings.CutSuffix(file, ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	kind, err := models.ParseChartKind(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	img, err := s.Renderer.PNG(s.Dashboard.Dataset(kind), s.Dashboard.Theme())
	if errors.Is(err, snapshot.ErrNoData) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Status: http.StatusUnprocessableEntity})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Write(img)
}
