package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartdeck/internal/config"
	"chartdeck/internal/dashboard"
	"chartdeck/internal/logger"
	"chartdeck/internal/mocks"
	"chartdeck/internal/models"
	"chartdeck/internal/storage"
	"chartdeck/internal/synth"
)

func TestMain(m *testing.M) {
	logger.SetGlobalLogger(logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}))
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		Environment:      "test",
		StorageMode:      config.StorageLocal,
		LocalDataDir:     "unused",
		DefaultBackend:   "echarts",
		DefaultTimeRange: "last30days",
		DefaultCategory:  "all",
		DefaultRegion:    "all",
		SnapshotWidth:    400,
		SnapshotHeight:   300,
	}
}

func newTestServer(t *testing.T) (*Server, *mocks.MemoryStorage, http.Handler) {
	t.Helper()
	mem := mocks.NewMemoryStorage()
	srv, err := NewServer(context.Background(), testConfig(), mem, synth.NewSeeded(11))
	require.NoError(t, err)
	return srv, mem, srv.SetupRoutes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) State {
	t.Helper()
	var st State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestHealthAndRoot(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/charts/{kind}")

	rec = do(t, h, http.MethodGet, "/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	_, _, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))
}

func TestCatalog(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var c Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.Len(t, c.Kinds, 12)
	assert.Equal(t, models.KindBar, c.Kinds[0].Kind)
	assert.Equal(t, "Sales by Region", c.Kinds[0].Title)
	assert.Len(t, c.TimeRanges, 4)
	assert.Len(t, c.Categories, 5)
	assert.Len(t, c.Regions, 5)
	assert.Equal(t, models.AllBackends, c.Backends)

	for _, k := range c.Kinds {
		if k.Kind == models.KindHeatmap {
			assert.True(t, k.Native[models.BackendECharts])
			assert.False(t, k.Native[models.BackendChartJS])
		}
	}
}

func TestLayout(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/layout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"widgets"`)
	assert.Contains(t, rec.Body.String(), `"kind":"boxplot"`)
}

func TestChartIsCached(t *testing.T) {
	_, _, h := newTestServer(t)

	first := do(t, h, http.MethodGet, "/api/charts/bar", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "echarts", first.Header().Get("X-Chart-Backend"))
	assert.Equal(t, "cached", first.Header().Get("X-Widget-State"))
	assert.Contains(t, first.Body.String(), `"series"`)

	second := do(t, h, http.MethodGet, "/api/charts/bar", "")
	assert.Equal(t, first.Body.String(), second.Body.String())

	st := decodeState(t, do(t, h, http.MethodGet, "/api/state", ""))
	assert.Equal(t, dashboard.Stats{Entries: 1, Hits: 1, Misses: 1}, st.Cache)
	assert.Equal(t, dashboard.Cached, st.Widgets[models.KindBar])
	assert.Equal(t, dashboard.Uncached, st.Widgets[models.KindPie])
}

func TestUnknownChartKindIsEmptyObject(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/charts/sparkline", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
	assert.Equal(t, "uncached", rec.Header().Get("X-Widget-State"))
}

func TestUnknownChartKindsDoNotGrowCacheOrMetrics(t *testing.T) {
	_, _, h := newTestServer(t)

	for i := 0; i < 20; i++ {
		do(t, h, http.MethodGet, fmt.Sprintf("/api/charts/junk-%d", i), "")
	}

	st := decodeState(t, do(t, h, http.MethodGet, "/api/state", ""))
	assert.Equal(t, dashboard.Stats{}, st.Cache)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `kind="junk`)
}

func TestChartHeaders(t *testing.T) {
	_, _, h := newTestServer(t)
	do(t, h, http.MethodPut, "/api/backend", `{"backend":"chartjs"}`)

	rec := do(t, h, http.MethodGet, "/api/charts/heatmap", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chartjs", rec.Header().Get("X-Chart-Backend"))
	assert.Equal(t, "cached", rec.Header().Get("X-Widget-State"))
}

func TestSnapshotUsesCachedDataset(t *testing.T) {
	_, _, h := newTestServer(t)

	do(t, h, http.MethodGet, "/api/charts/scatter", "")
	rec := do(t, h, http.MethodGet, "/api/snapshots/scatter.png", "")
	require.Equal(t, http.StatusOK, rec.Code)

	st := decodeState(t, do(t, h, http.MethodGet, "/api/state", ""))
	assert.Equal(t, dashboard.Stats{Entries: 1, Hits: 1, Misses: 1}, st.Cache)
}

func TestSetFilters(t *testing.T) {
	_, _, h := newTestServer(t)
	do(t, h, http.MethodGet, "/api/charts/line", "")

	rec := do(t, h, http.MethodPut, "/api/filters", `{"region":"north"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, models.FilterState{TimeRange: models.TimeLast30Days, Category: models.CategoryAll, Region: models.RegionNorth}, st.Filters)
	assert.Equal(t, 0, st.Cache.Entries)
	assert.Equal(t, uint64(1), st.Cache.Clears)

	rec = do(t, h, http.MethodPut, "/api/filters", `{"timeRange":"thisYear","category":"food"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	st = decodeState(t, rec)
	assert.Equal(t, models.FilterState{TimeRange: models.TimeThisYear, Category: models.CategoryFood, Region: models.RegionNorth}, st.Filters)

	// same values still clear
	rec = do(t, h, http.MethodPut, "/api/filters", `{"region":"north"}`)
	assert.Equal(t, uint64(3), decodeState(t, rec).Cache.Clears)

	rec = do(t, h, http.MethodPost, "/api/filters/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultFilters(), decodeState(t, rec).Filters)
}

func TestSetFiltersRejectsBadInput(t *testing.T) {
	_, _, h := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown category", `{"category":"toys"}`},
		{"unknown region with valid time", `{"timeRange":"last7days","region":"moon"}`},
		{"unknown field", `{"colour":"red"}`},
		{"not json", `region=north`},
		{"empty body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, "/api/filters", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":400`)
		})
	}

	st := decodeState(t, do(t, h, http.MethodGet, "/api/state", ""))
	assert.Equal(t, models.DefaultFilters(), st.Filters)
	assert.Equal(t, uint64(0), st.Cache.Clears)
}

func TestSetBackend(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodPut, "/api/backend", `{"backend":"highcharts"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.BackendHighcharts, decodeState(t, rec).Backend)

	rec = do(t, h, http.MethodGet, "/api/charts/candlestick", "")
	assert.Equal(t, "highcharts", rec.Header().Get("X-Chart-Backend"))
	assert.Contains(t, rec.Body.String(), `"upLineColor"`)

	rec = do(t, h, http.MethodPut, "/api/backend", `{"backend":"d3"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemeToggleKeepsCache(t *testing.T) {
	_, mem, h := newTestServer(t)
	light := do(t, h, http.MethodGet, "/api/charts/radar", "").Body.String()

	rec := do(t, h, http.MethodPost, "/api/theme/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dark":true}`, rec.Body.String())

	flag, err := mem.GetFile(context.Background(), storage.ThemeFlagPath)
	require.NoError(t, err)
	assert.Equal(t, "true", string(flag))

	assert.Equal(t, light, do(t, h, http.MethodGet, "/api/charts/radar", "").Body.String())

	do(t, h, http.MethodPost, "/api/cache/clear", "")
	dark := do(t, h, http.MethodGet, "/api/charts/radar", "").Body.String()
	assert.NotEqual(t, light, dark)
	assert.Contains(t, dark, "rgba(64, 64, 64, 0.2)")
}

func TestThemeLoadedFromStorage(t *testing.T) {
	mem := mocks.NewMemoryStorage()
	require.NoError(t, mem.StoreFile(context.Background(), storage.ThemeFlagPath, []byte("true")))

	srv, err := NewServer(context.Background(), testConfig(), mem, synth.NewSeeded(1))
	require.NoError(t, err)
	assert.True(t, srv.Dashboard.Theme().Dark)
}

func TestClearCache(t *testing.T) {
	_, _, h := newTestServer(t)
	do(t, h, http.MethodGet, "/api/charts/pie", "")
	do(t, h, http.MethodGet, "/api/charts/funnel", "")

	rec := do(t, h, http.MethodPost, "/api/cache/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats dashboard.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, uint64(1), stats.Clears)
}

func TestSnapshot(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/snapshots/pie.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG\r\n\x1a\n")))

	rec = do(t, h, http.MethodGet, "/api/snapshots/sparkline.png", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/snapshots/pie.svg", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExports(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/exports", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)

	rec = do(t, h, http.MethodPost, "/api/exports", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID   string `json:"id"`
		Path string `json:"path"`
		URL  string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "exports/"+created.ID+"/index.html", created.Path)
	assert.Equal(t, created.URL, rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/api/exports", "")
	assert.Contains(t, rec.Body.String(), created.ID)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	for _, target := range []string{created.URL, "/exports/" + created.ID + "/"} {
		rec = do(t, h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "Dashboard Export")
	}

	rec = do(t, h, http.MethodGet, "/exports/"+created.ID+"/summary.md", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, "/exports/not-a-uuid/index.html", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/exports/"+created.ID+"/missing.css", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportRejectsConcurrentRequest(t *testing.T) {
	srv, _, h := newTestServer(t)

	srv.exportMutex.Lock()
	rec := do(t, h, http.MethodPost, "/api/exports", "")
	srv.exportMutex.Unlock()

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "export already in progress")
}

func TestExportStorageFailure(t *testing.T) {
	_, mem, h := newTestServer(t)
	mem.Err = io.ErrClosedPipe

	rec := do(t, h, http.MethodPost, "/api/exports", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetrics(t *testing.T) {
	_, _, h := newTestServer(t)
	do(t, h, http.MethodGet, "/api/charts/gauge", "")
	do(t, h, http.MethodGet, "/api/charts/gauge", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `chartdeck_cache_lookups_total{backend="echarts",kind="gauge",result="hit"} 1`)
	assert.Contains(t, body, `chartdeck_cache_lookups_total{backend="echarts",kind="gauge",result="miss"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMethodNotAllowed(t *testing.T) {
	_, _, h := newTestServer(t)

	rec := do(t, h, http.MethodDelete, "/api/state", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/filters", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
