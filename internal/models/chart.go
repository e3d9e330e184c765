package models

import "fmt"

// ChartKind identifies one of the supported visualization types
type ChartKind string

const (
	KindBar         ChartKind = "bar"
	KindPie         ChartKind = "pie"
	KindLine        ChartKind = "line"
	KindScatter     ChartKind = "scatter"
	KindHeatmap     ChartKind = "heatmap"
	KindRadar       ChartKind = "radar"
	KindGauge       ChartKind = "gauge"
	KindFunnel      ChartKind = "funnel"
	KindTreemap     ChartKind = "treemap"
	KindSunburst    ChartKind = "sunburst"
	KindCandlestick ChartKind = "candlestick"
	KindBoxplot     ChartKind = "boxplot"
)

// AllKinds lists every chart kind in dashboard order
var AllKinds = []ChartKind{
	KindBar, KindPie, KindLine, KindScatter, KindHeatmap, KindRadar,
	KindGauge, KindFunnel, KindTreemap, KindSunburst, KindCandlestick, KindBoxplot,
}

var kindTitles = map[ChartKind]string{
	KindBar:         "Sales by Region",
	KindPie:         "Market Share",
	KindLine:        "Revenue Trend",
	KindScatter:     "Price vs Performance",
	KindHeatmap:     "Activity Heatmap",
	KindRadar:       "Skills Assessment",
	KindGauge:       "Performance Gauge",
	KindFunnel:      "Sales Funnel",
	KindTreemap:     "Market Share Treemap",
	KindSunburst:    "Category Breakdown",
	KindCandlestick: "Stock Price",
	KindBoxplot:     "Data Distribution",
}

// Valid reports whether k is one of the known kinds
func (k ChartKind) Valid() bool {
	_, ok := kindTitles[k]
	return ok
}

// Title returns the widget title for the kind, "Chart" when unknown
func (k ChartKind) Title() string {
	if title, ok := kindTitles[k]; ok {
		return title
	}
	return "Chart"
}

// Scalar reports whether the kind is built from filter-driven scalar series.
// Only these kinds are deterministic for a given filter state.
func (k ChartKind) Scalar() bool {
	switch k {
	case KindBar, KindLine, KindPie, KindFunnel:
		return true
	}
	return false
}

// Random reports whether the kind is regenerated from the random source on every call
func (k ChartKind) Random() bool {
	switch k {
	case KindScatter, KindHeatmap, KindCandlestick:
		return true
	}
	return false
}

// ParseChartKind converts a raw string into a ChartKind
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("chart kind %q: %w", s, ErrUnknownValue)
	}
	return k, nil
}

// Backend identifies a chart-rendering library schema
type Backend string

const (
	BackendECharts    Backend = "echarts"
	BackendHighcharts Backend = "highcharts"
	BackendChartJS    Backend = "chartjs"
)

// AllBackends lists the supported backends
var AllBackends = []Backend{BackendECharts, BackendHighcharts, BackendChartJS}

// ParseBackend converts a raw string into a Backend
func ParseBackend(s string) (Backend, error) {
	for _, b := range AllBackends {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("backend %q: %w", s, ErrUnknownValue)
}

// Theme carries the light/dark flag read when a payload is built
type Theme struct {
	Dark bool `json:"dark"`
}

// TextColor is used for labels, legends and axis lines
func (t Theme) TextColor() string {
	if t.Dark {
		return "#e0e0e0"
	}
	return "#333"
}

// GridColor is used for split lines
func (t Theme) GridColor() string {
	if t.Dark {
		return "#404040"
	}
	return "#e0e0e0"
}

// Background is the page and canvas color behind the charts
func (t Theme) Background() string {
	if t.Dark {
		return "#1a1d23"
	}
	return "#fff"
}

// BorderColor separates adjacent segments in hierarchical charts. Segments
// are outlined in the background color so they read as gaps.
func (t Theme) BorderColor() string {
	return t.Background()
}

// SplitAreaColors returns the alternating radar band fills
func (t Theme) SplitAreaColors() []string {
	if t.Dark {
		return []string{"rgba(64, 64, 64, 0.2)", "rgba(64, 64, 64, 0.4)"}
	}
	return []string{"rgba(250, 250, 250, 0.3)", "rgba(200, 200, 200, 0.3)"}
}

// Palette is the shared series color sequence
var Palette = []string{"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de", "#3ba272", "#fc8452", "#9a60b4", "#ea7ccc"}

// HeatmapColors is the visual-map gradient for activity heatmaps
var HeatmapColors = []string{"#313695", "#4575b4", "#74add1", "#abd9e9", "#e0f3f8", "#ffffbf", "#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026"}

// PaletteColor returns the palette entry for index i, wrapping around
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}
