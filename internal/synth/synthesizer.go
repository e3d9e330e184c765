package synth

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"chartdeck/internal/models"
)

// Source is the random number source used by the point-cloud, heatmap and
// candlestick kinds. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Synthesizer builds neutral datasets from a chart kind and the active filters
type Synthesizer struct {
	mu  sync.Mutex
	rng Source
}

// New creates a synthesizer drawing random kinds from src
func New(src Source) *Synthesizer {
	return &Synthesizer{rng: src}
}

// NewSeeded creates a synthesizer with a math/rand source. A zero seed uses the clock.
func NewSeeded(seed int64) *Synthesizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(rand.New(rand.NewSource(seed)))
}

// Generate produces the neutral dataset for kind under filters.
// Unknown kinds yield an empty dataset.
func (s *Synthesizer) Generate(kind models.ChartKind, filters models.FilterState) models.NeutralChartData {
	switch kind {
	case models.KindBar:
		return scalarChart(kind, barCategories, barSeries, filters)
	case models.KindLine:
		return scalarChart(kind, lineCategories, lineSeries, filters)
	case models.KindPie:
		return singleSeriesChart(kind, "Traffic Source", pieCategories, pieSpecs, filters)
	case models.KindFunnel:
		return singleSeriesChart(kind, "Sales Funnel", funnelCategories, funnelSpecs, filters)
	case models.KindRadar:
		return radarChart()
	case models.KindGauge:
		return gaugeChart()
	case models.KindScatter:
		return s.scatterChart()
	case models.KindHeatmap:
		return s.heatmapChart()
	case models.KindCandlestick:
		return s.candlestickChart()
	case models.KindBoxplot:
		return boxplotChart()
	case models.KindTreemap:
		return treeChart(kind, "Market Share", treemapNodes)
	case models.KindSunburst:
		return treeChart(kind, "Categories", sunburstNodes)
	default:
		return models.EmptyData(kind)
	}
}

func scalarChart(kind models.ChartKind, categories []string, rows []scalarSeries, f models.FilterState) models.NeutralChartData {
	data := models.NeutralChartData{
		Kind:       kind,
		Title:      kind.Title(),
		Categories: append([]string(nil), categories...),
		Series:     make([]models.Series, 0, len(rows)),
	}
	for _, r := range rows {
		data.Series = append(data.Series, models.Series{
			Name:   r.name,
			Color:  r.color,
			Fill:   r.fill,
			Values: Values(r.specs, f),
		})
	}
	return data
}

func singleSeriesChart(kind models.ChartKind, name string, categories []string, specs []SeriesSpec, f models.FilterState) models.NeutralChartData {
	return models.NeutralChartData{
		Kind:       kind,
		Title:      kind.Title(),
		SeriesName: name,
		Categories: append([]string(nil), categories...),
		Series:     []models.Series{{Name: name, Values: Values(specs, f)}},
	}
}

func radarChart() models.NeutralChartData {
	data := models.NeutralChartData{
		Kind:       models.KindRadar,
		Title:      models.KindRadar.Title(),
		Indicators: append([]models.Indicator(nil), radarIndicators...),
		Series:     make([]models.Series, 0, len(radarSeries)),
	}
	for _, ind := range radarIndicators {
		data.Categories = append(data.Categories, ind.Name)
	}
	for _, sr := range radarSeries {
		sr.Values = append([]float64(nil), sr.Values...)
		data.Series = append(data.Series, sr)
	}
	return data
}

func gaugeChart() models.NeutralChartData {
	return models.NeutralChartData{
		Kind:       models.KindGauge,
		Title:      models.KindGauge.Title(),
		SeriesName: "Performance",
		Categories: []string{"Score"},
		Series:     []models.Series{{Name: "Performance", Values: []float64{75}}},
	}
}

func (s *Synthesizer) scatterChart() models.NeutralChartData {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := make([][]models.Point, len(scatterGroups))
	for i := 0; i < scatterPoints; i++ {
		for g, grp := range scatterGroups {
			x := s.rng.Float64()*grp.xSpan + grp.xBase
			y := s.rng.Float64()*grp.ySpan + grp.yBase
			points[g] = append(points[g], models.Point{X: x, Y: y})
		}
	}

	data := models.NeutralChartData{Kind: models.KindScatter, Title: models.KindScatter.Title()}
	for g, grp := range scatterGroups {
		data.Series = append(data.Series, models.Series{Name: grp.name, Color: grp.color, Points: points[g]})
	}
	return data
}

func (s *Synthesizer) heatmapChart() models.NeutralChartData {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]models.HeatCell, 0, len(HeatmapDays)*len(HeatmapHours))
	for day := range HeatmapDays {
		for hour := range HeatmapHours {
			cells = append(cells, models.HeatCell{
				X:     hour,
				Y:     day,
				Value: math.Floor(s.rng.Float64() * heatmapMax),
			})
		}
	}
	return models.NeutralChartData{
		Kind:       models.KindHeatmap,
		Title:      "Weekly Activity Pattern",
		Categories: append([]string(nil), HeatmapHours...),
		Rows:       append([]string(nil), HeatmapDays...),
		Series:     []models.Series{{Name: "Activity", Cells: cells}},
	}
}

func (s *Synthesizer) candlestickChart() models.NeutralChartData {
	s.mu.Lock()
	defer s.mu.Unlock()

	candles := make([]models.OHLC, 0, candleDays)
	days := make([]string, 0, candleDays)
	base := float64(candleBasePrice)
	for i := 0; i < candleDays; i++ {
		open := base + s.rng.Float64()*100 - 50
		closing := open + s.rng.Float64()*100 - 50
		low := math.Min(open, closing) - s.rng.Float64()*20
		high := math.Max(open, closing) + s.rng.Float64()*20
		candles = append(candles, models.OHLC{
			Open:  round2(open),
			Close: round2(closing),
			Low:   round2(low),
			High:  round2(high),
		})
		days = append(days, "Day "+strconv.Itoa(i+1))
		base = round2(closing)
	}
	return models.NeutralChartData{
		Kind:       models.KindCandlestick,
		Title:      models.KindCandlestick.Title(),
		Categories: days,
		Series:     []models.Series{{Name: "Stock Price", Candles: candles}},
	}
}

func boxplotChart() models.NeutralChartData {
	boxes := make([]models.BoxSummary, 0, len(boxplotSamples))
	for _, sample := range boxplotSamples {
		boxes = append(boxes, FiveNumberSummary(sample))
	}
	return models.NeutralChartData{
		Kind:       models.KindBoxplot,
		Title:      models.KindBoxplot.Title(),
		Categories: append([]string(nil), boxplotTeams...),
		Series:     []models.Series{{Name: "Performance", Color: "#5470c6", Boxes: boxes}},
	}
}

func treeChart(kind models.ChartKind, name string, nodes []models.TreeNode) models.NeutralChartData {
	return models.NeutralChartData{
		Kind:       kind,
		Title:      kind.Title(),
		SeriesName: name,
		Series:     []models.Series{{Name: name, Nodes: cloneNodes(nodes)}},
	}
}

// FiveNumberSummary sorts a copy of sample ascending and picks
// [min, sorted[n*0.25], sorted[n*0.5], sorted[n*0.75], max] with floor indices.
func FiveNumberSummary(sample []float64) models.BoxSummary {
	if len(sample) == 0 {
		return models.BoxSummary{}
	}
	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)
	n := float64(len(sorted))
	return models.BoxSummary{
		Min:    sorted[0],
		Q1:     sorted[int(math.Floor(n*0.25))],
		Median: sorted[int(math.Floor(n*0.5))],
		Q3:     sorted[int(math.Floor(n*0.75))],
		Max:    sorted[len(sorted)-1],
	}
}

func cloneNodes(nodes []models.TreeNode) []models.TreeNode {
	if nodes == nil {
		return nil
	}
	out := make([]models.TreeNode, len(nodes))
	for i, n := range nodes {
		n.Children = cloneNodes(n.Children)
		out[i] = n
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
