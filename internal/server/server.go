package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chartdeck/internal/config"
	"chartdeck/internal/dashboard"
	"chartdeck/internal/layout"
	"chartdeck/internal/logger"
	"chartdeck/internal/models"
	"chartdeck/internal/reports"
	"chartdeck/internal/snapshot"
	"chartdeck/internal/storage"
	"chartdeck/internal/synth"
	"chartdeck/internal/theme"
)

// Server exposes the dashboard over HTTP
type Server struct {
	Config    *config.Config
	Dashboard *dashboard.Dashboard
	Theme     *theme.Store
	Storage   storage.StorageClient
	Exporter  *reports.Exporter
	Renderer  *snapshot.Renderer
	Layout    *layout.Layout
	Registry  *prometheus.Registry

	// only one export renders at a time
	exportMutex sync.Mutex
	log         *logger.Logger
}

// NewServer wires the dashboard, theme store, exporter and metrics on top of
// an already opened storage client. gen may be nil, in which case a
// synthesizer seeded from cfg.RandomSeed is used.
func NewServer(ctx context.Context, cfg *config.Config, client storage.StorageClient, gen dashboard.Generator) (*Server, error) {
	log := logger.GetGlobalLogger().WithComponent("server")

	backend, err := cfg.Backend()
	if err != nil {
		return nil, fmt.Errorf("invalid backend: %w", err)
	}
	defaults, err := cfg.DefaultFilters()
	if err != nil {
		return nil, fmt.Errorf("invalid default filters: %w", err)
	}
	grid, err := layout.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	themeStore := theme.NewStore(client, cfg.DarkTheme)
	if err := themeStore.Load(ctx); err != nil {
		// keep serving with the configured default
		log.Error("Failed to load persisted theme", err)
	}

	if gen == nil {
		gen = synth.NewSeeded(cfg.RandomSeed)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dash := dashboard.New(gen,
		dashboard.WithTheme(themeStore),
		dashboard.WithDefaults(defaults),
		dashboard.WithBackend(backend),
		dashboard.WithMetrics(dashboard.NewMetrics(reg)),
		dashboard.WithStateObserver(func(kind models.ChartKind, from, to dashboard.WidgetState) {
			log.Debug("Widget state changed", map[string]interface{}{"kind": kind, "from": from, "to": to})
		}),
	)

	s := &Server{
		Config:    cfg,
		Dashboard: dash,
		Theme:     themeStore,
		Storage:   client,
		Exporter:  reports.NewExporter(client, dash),
		Renderer:  snapshot.NewRenderer(cfg.SnapshotWidth, cfg.SnapshotHeight),
		Layout:    grid,
		Registry:  reg,
		log:       log,
	}

	log.Info("Server initialized", map[string]interface{}{
		"backend": backend,
		"filters": defaults.String(),
		"dark":    themeStore.IsDark(),
		"storage": cfg.StorageMode,
	})
	return s, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.HandleRoot)
	mux.HandleFunc("GET /health", s.HandleHealth)

	mux.HandleFunc("GET /api/catalog", s.HandleCatalog)
	mux.HandleFunc("GET /api/layout", s.HandleLayout)
	mux.HandleFunc("GET /api/state", s.HandleState)

	mux.HandleFunc("PUT /api/filters", s.HandleSetFilters)
	mux.HandleFunc("POST /api/filters/reset", s.HandleResetFilters)
	mux.HandleFunc("PUT /api/backend", s.HandleSetBackend)
	mux.HandleFunc("POST /api/theme/toggle", s.HandleToggleTheme)
	mux.HandleFunc("POST /api/cache/clear", s.HandleClearCache)

	mux.HandleFunc("GET /api/charts/{kind}", s.HandleChart)
	mux.HandleFunc("GET /api/snapshots/{file}", s.HandleSnapshot)

	mux.HandleFunc("POST /api/exports", s.HandleCreateExport)
	mux.HandleFunc("GET /api/exports", s.HandleListExports)
	mux.HandleFunc("GET /exports/{id}/{file...}", s.HandleExportFile)

	mux.Handle("GET /metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{Registry: s.Registry}))

	return s.withRequestLogging(mux)
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.With(map[string]interface{}{"request_id": id}).Debug("Request served", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
	})
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
