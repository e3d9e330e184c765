package dashboard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"chartdeck/internal/models"
)

// Metrics exports cache activity to Prometheus. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	lookups  *prometheus.CounterVec
	clears   prometheus.Counter
	entries  prometheus.Gauge
	computes *prometheus.HistogramVec
}

// NewMetrics registers the dashboard collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartdeck",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Payload cache lookups by kind, backend and result",
		}, []string{"kind", "backend", "result"}),
		clears: f.NewCounter(prometheus.CounterOpts{
			Namespace: "chartdeck",
			Subsystem: "cache",
			Name:      "clears_total",
			Help:      "Wholesale payload cache clears",
		}),
		entries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "chartdeck",
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Payloads currently cached",
		}),
		computes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chartdeck",
			Name:      "payload_compute_seconds",
			Help:      "Time spent synthesizing and mapping a payload",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"kind", "backend"}),
	}
}

func (m *Metrics) lookup(key CacheKey, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(string(key.Kind), string(key.Backend), result).Inc()
}

func (m *Metrics) cleared() {
	if m == nil {
		return
	}
	m.clears.Inc()
	m.entries.Set(0)
}

func (m *Metrics) computed(kind models.ChartKind, backend models.Backend, took time.Duration, entries int) {
	if m == nil {
		return
	}
	m.computes.WithLabelValues(string(kind), string(backend)).Observe(took.Seconds())
	m.entries.Set(float64(entries))
}
