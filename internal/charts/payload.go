package charts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"chartdeck/internal/models"
)

// Payload is a chart configuration shaped for one rendering library.
// The renderer treats it as an opaque blob.
type Payload map[string]interface{}

// Adapter maps neutral datasets into one backend's configuration schema
type Adapter interface {
	Backend() models.Backend
	// Map returns the backend configuration for data, or an empty payload
	// when the kind is unknown or the dataset is empty.
	Map(data models.NeutralChartData, theme models.Theme) Payload
	// Native reports whether the backend draws kind directly rather than
	// through a degraded substitute.
	Native(kind models.ChartKind) bool
}

// mapper builds the payload for a single chart kind
type mapper func(data models.NeutralChartData, theme models.Theme) Payload

// dispatch is a per-backend table of kind mappers
type dispatch struct {
	backend  models.Backend
	mappers  map[models.ChartKind]mapper
	degraded map[models.ChartKind]bool
}

func (d *dispatch) Backend() models.Backend {
	return d.backend
}

func (d *dispatch) Map(data models.NeutralChartData, theme models.Theme) Payload {
	m, ok := d.mappers[data.Kind]
	if !ok || data.IsEmpty() {
		return Payload{}
	}
	return m(data, theme)
}

func (d *dispatch) Native(kind models.ChartKind) bool {
	_, ok := d.mappers[kind]
	return ok && !d.degraded[kind]
}

var registry = map[models.Backend]Adapter{
	models.BackendECharts:    newEChartsAdapter(),
	models.BackendHighcharts: newHighchartsAdapter(),
	models.BackendChartJS:    newChartJSAdapter(),
}

// For returns the adapter registered for backend
func For(backend models.Backend) (Adapter, error) {
	a, ok := registry[backend]
	if !ok {
		return nil, fmt.Errorf("no adapter for backend %q: %w", backend, models.ErrUnknownValue)
	}
	return a, nil
}

// Map is a convenience wrapper resolving the adapter and mapping data in one call.
// Unknown backends yield an empty payload.
func Map(backend models.Backend, data models.NeutralChartData, theme models.Theme) Payload {
	a, err := For(backend)
	if err != nil {
		return Payload{}
	}
	return a.Map(data, theme)
}

// JSON encodes the payload
func (p Payload) JSON() ([]byte, error) {
	return json.Marshal(p)
}

// object returns the nested object stored at key, descending into the first
// element when the value is a list. It returns nil when there is none.
func (p Payload) object(key string) map[string]interface{} {
	switch v := p[key].(type) {
	case map[string]interface{}:
		return v
	case []interface{}:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]interface{}); ok {
				return m
			}
		}
	}
	return nil
}

// series returns the i-th entry of the series list, or nil
func (p Payload) series(i int) map[string]interface{} {
	list, _ := p["series"].([]interface{})
	if i < 0 || i >= len(list) {
		return nil
	}
	m, _ := list[i].(map[string]interface{})
	return m
}

// merge copies fields into dst, skipping a nil destination
func merge(dst map[string]interface{}, fields map[string]interface{}) {
	if dst == nil {
		return
	}
	for k, v := range fields {
		dst[k] = v
	}
}

// rgba converts a #rrggbb color into an rgba() string with the given alpha
func rgba(hex string, alpha float64) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return hex
	}
	var c [3]int64
	for i := range c {
		v, err := strconv.ParseInt(h[i*2:i*2+2], 16, 64)
		if err != nil {
			return hex
		}
		c[i] = v
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c[0], c[1], c[2], strconv.FormatFloat(alpha, 'f', -1, 64))
}

// seriesColor returns the series color or the palette entry for its position
func seriesColor(s models.Series, i int) string {
	if s.Color != "" {
		return s.Color
	}
	return models.PaletteColor(i)
}

func seriesNames(data models.NeutralChartData) []string {
	names := make([]string, 0, len(data.Series))
	for _, s := range data.Series {
		names = append(names, s.Name)
	}
	return names
}

func firstValue(data models.NeutralChartData) float64 {
	if len(data.Series) == 0 || len(data.Series[0].Values) == 0 {
		return 0
	}
	return data.Series[0].Values[0]
}

func maxValue(values []float64) float64 {
	var m float64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// gaugeBand is a colored fraction of the gauge arc, ending at Upto (0..1)
type gaugeBand struct {
	Upto  float64
	Color string
}

var gaugeBands = []gaugeBand{
	{Upto: 0.3, Color: "#ee6666"},
	{Upto: 0.7, Color: "#fac858"},
	{Upto: 1, Color: "#91cc75"},
}

const gaugeMax = 100
