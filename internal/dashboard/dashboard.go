package dashboard

import (
	"fmt"
	"sync"
	"time"

	"chartdeck/internal/charts"
	"chartdeck/internal/logger"
	"chartdeck/internal/models"
)

// Generator produces neutral datasets. *synth.Synthesizer satisfies it.
type Generator interface {
	Generate(kind models.ChartKind, filters models.FilterState) models.NeutralChartData
}

// ThemeSource reports the light/dark flag. It is read once per cache miss,
// so a theme change alone does not restyle payloads that are already cached.
type ThemeSource interface {
	IsDark() bool
}

// StaticTheme is a fixed ThemeSource
type StaticTheme bool

// IsDark implements ThemeSource
func (s StaticTheme) IsDark() bool {
	return bool(s)
}

// Dashboard owns the active filters, the active backend and the payload cache
type Dashboard struct {
	mu        sync.Mutex
	gen       Generator
	theme     ThemeSource
	defaults  models.FilterState
	filters   models.FilterState
	backend   models.Backend
	cache     *Cache
	computing map[models.ChartKind]bool
	observer  StateObserver
	metrics   *Metrics
	log       *logger.Logger
}

// Option configures a Dashboard
type Option func(*Dashboard)

// WithTheme sets the theme source read on cache misses
func WithTheme(t ThemeSource) Option {
	return func(d *Dashboard) { d.theme = t }
}

// WithDefaults sets the initial filters and the target of ResetFilters
func WithDefaults(f models.FilterState) Option {
	return func(d *Dashboard) { d.defaults = f }
}

// WithBackend sets the initial backend
func WithBackend(b models.Backend) Option {
	return func(d *Dashboard) { d.backend = b }
}

// WithMetrics enables Prometheus instrumentation
func WithMetrics(m *Metrics) Option {
	return func(d *Dashboard) { d.metrics = m }
}

// WithLogger replaces the component logger
func WithLogger(l *logger.Logger) Option {
	return func(d *Dashboard) { d.log = l }
}

// WithStateObserver registers a callback for widget state transitions
func WithStateObserver(o StateObserver) Option {
	return func(d *Dashboard) { d.observer = o }
}

// New creates a dashboard drawing datasets from gen
func New(gen Generator, opts ...Option) *Dashboard {
	d := &Dashboard{
		gen:       gen,
		theme:     StaticTheme(false),
		defaults:  models.DefaultFilters(),
		backend:   models.BackendECharts,
		cache:     NewCache(),
		computing: make(map[models.ChartKind]bool),
		log:       logger.GetGlobalLogger().WithComponent("dashboard"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.filters = d.defaults
	return d
}

// Filters returns the active filter state
func (d *Dashboard) Filters() models.FilterState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// Defaults returns the filter state ResetFilters restores
func (d *Dashboard) Defaults() models.FilterState {
	return d.defaults
}

// SetFilters replaces all three filters and clears the cache. The cache is
// cleared even when f equals the current state.
func (d *Dashboard) SetFilters(f models.FilterState) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = f
	d.clearLocked("filters changed")
	return nil
}

// SetTimeRange changes the time range filter
func (d *Dashboard) SetTimeRange(tr models.TimeRange) error {
	if _, err := models.ParseTimeRange(string(tr)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters.TimeRange = tr
	d.clearLocked("time range changed")
	return nil
}

// SetCategory changes the category filter
func (d *Dashboard) SetCategory(c models.Category) error {
	if _, err := models.ParseCategory(string(c)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters.Category = c
	d.clearLocked("category changed")
	return nil
}

// SetRegion changes the region filter
func (d *Dashboard) SetRegion(r models.Region) error {
	if _, err := models.ParseRegion(string(r)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters.Region = r
	d.clearLocked("region changed")
	return nil
}

// ResetFilters restores the configured defaults and clears the cache
func (d *Dashboard) ResetFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = d.defaults
	d.clearLocked("filters reset")
}

// Backend returns the active backend
func (d *Dashboard) Backend() models.Backend {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backend
}

// SetBackend switches the rendering backend and clears the cache
func (d *Dashboard) SetBackend(b models.Backend) error {
	if _, err := charts.For(b); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backend = b
	d.clearLocked("backend changed")
	return nil
}

// Theme returns the current theme as reported by the theme source
func (d *Dashboard) Theme() models.Theme {
	return models.Theme{Dark: d.theme.IsDark()}
}

// Invalidate clears the cache without changing any selection
func (d *Dashboard) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearLocked("explicit invalidate")
}

// Stats returns cache counters
func (d *Dashboard) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.Stats()
}

// WidgetState reports the state of kind under the active filters and backend
func (d *Dashboard) WidgetState(kind models.ChartKind) WidgetState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked(kind)
}

// Widget is one chart as served: the payload together with the backend and
// state it was resolved under
type Widget struct {
	Kind    models.ChartKind
	Backend models.Backend
	State   WidgetState
	Payload charts.Payload
}

// Payload returns the backend configuration for kind under the active filters
// and backend, computing and caching it on a miss. Unknown kinds yield an
// empty payload.
func (d *Dashboard) Payload(kind models.ChartKind) charts.Payload {
	return d.Widget(kind).Payload
}

// Widget resolves kind like Payload and reports the backend and widget state
// under the same lock, so a concurrent SetBackend cannot split them.
// Unknown kinds are neither cached nor counted.
func (d *Dashboard) Widget(kind models.ChartKind) Widget {
	d.mu.Lock()
	defer d.mu.Unlock()

	w := Widget{Kind: kind, Backend: d.backend, State: Uncached, Payload: charts.Payload{}}
	if !kind.Valid() {
		return w
	}
	w.Payload = d.entryLocked(kind).Payload
	w.State = Cached
	return w
}

// Dataset returns the neutral dataset behind kind's payload under the active
// filters and backend, computing and caching it on a miss. Unknown kinds
// yield an empty dataset.
func (d *Dashboard) Dataset(kind models.ChartKind) models.NeutralChartData {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !kind.Valid() {
		return models.EmptyData(kind)
	}
	return d.entryLocked(kind).Data
}

func (d *Dashboard) entryLocked(kind models.ChartKind) Entry {
	key := CacheKey{Kind: kind, Filters: d.filters, Backend: d.backend}
	e, hit := d.cache.Get(key)
	d.metrics.lookup(key, hit)
	if hit {
		return e
	}

	d.computing[kind] = true
	d.transition(kind, Uncached, Computing)
	start := time.Now()

	e = d.compute(key)

	delete(d.computing, kind)
	d.cache.Put(key, e)
	d.metrics.computed(kind, key.Backend, time.Since(start), d.cache.Len())
	d.transition(kind, Computing, Cached)

	d.log.Debug("Payload cache miss", map[string]interface{}{
		"kind":    kind,
		"backend": key.Backend,
		"filters": key.Filters.String(),
	})
	return e
}

func (d *Dashboard) compute(key CacheKey) Entry {
	data := d.gen.Generate(key.Kind, key.Filters)
	adapter, err := charts.For(key.Backend)
	if err != nil {
		d.log.Error("No adapter for backend", err, map[string]interface{}{"backend": key.Backend})
		return Entry{Data: data, Payload: charts.Payload{}}
	}
	if !adapter.Native(key.Kind) {
		d.log.Debug("Backend lacks native support, using fallback", map[string]interface{}{
			"kind":    key.Kind,
			"backend": key.Backend,
		})
	}
	return Entry{Data: data, Payload: adapter.Map(data, models.Theme{Dark: d.theme.IsDark()})}
}

func (d *Dashboard) stateLocked(kind models.ChartKind) WidgetState {
	if d.computing[kind] {
		return Computing
	}
	if d.cache.Has(CacheKey{Kind: kind, Filters: d.filters, Backend: d.backend}) {
		return Cached
	}
	return Uncached
}

// clearLocked drops every cached payload. Widgets that were Cached under the
// new selection would be unreachable anyway, so every cached kind is reported
// as returning to Uncached.
func (d *Dashboard) clearLocked(reason string) {
	keys := d.cache.Keys()
	removed := d.cache.Clear()
	d.metrics.cleared()

	seen := make(map[models.ChartKind]bool, len(keys))
	for _, k := range keys {
		if seen[k.Kind] {
			continue
		}
		seen[k.Kind] = true
		d.transition(k.Kind, Cached, Uncached)
	}

	d.log.Debug("Payload cache cleared", map[string]interface{}{
		"reason":  reason,
		"removed": removed,
		"filters": d.filters.String(),
		"backend": d.backend,
	})
}

func (d *Dashboard) transition(kind models.ChartKind, from, to WidgetState) {
	if d.observer != nil {
		d.observer(kind, from, to)
	}
}
