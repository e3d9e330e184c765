package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chartdeck/internal/models"
)

// ErrNoData is returned for datasets with nothing to draw
var ErrNoData = errors.New("dataset has no values to draw")

// Renderer draws neutral datasets as PNG images
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer producing images of the given size
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// PNG renders data and returns the encoded image
func (r *Renderer) PNG(data models.NeutralChartData, theme models.Theme) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(data, theme, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes a PNG of data to w. Bar, line, scatter and pie datasets get
// their own chart type; every other kind is drawn as a bar chart of its
// flattened values.
func (r *Renderer) Render(data models.NeutralChartData, theme models.Theme, w io.Writer) error {
	if data.IsEmpty() {
		return fmt.Errorf("%s: %w", data.Kind, ErrNoData)
	}

	var err error
	switch data.Kind {
	case models.KindLine:
		err = r.lineChart(data, theme).Render(chart.PNG, w)
	case models.KindScatter:
		err = r.scatterChart(data, theme).Render(chart.PNG, w)
	case models.KindPie:
		err = r.pieChart(data, theme).Render(chart.PNG, w)
	default:
		labels, values := Flatten(data)
		if len(values) == 0 {
			return fmt.Errorf("%s: %w", data.Kind, ErrNoData)
		}
		err = r.barChart(data.Title, labels, values, theme).Render(chart.PNG, w)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s snapshot: %w", data.Kind, err)
	}
	return nil
}

func titleStyle(theme models.Theme) chart.Style {
	return chart.Style{FontSize: 14, FontColor: drawing.ParseColor(theme.TextColor())}
}

func axisStyle(theme models.Theme) chart.Style {
	return chart.Style{FontSize: 9, FontColor: drawing.ParseColor(theme.TextColor())}
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}}
}

func (r *Renderer) barChart(title string, labels []string, values []float64, theme models.Theme) chart.BarChart {
	bars := make([]chart.Value, 0, len(values))
	top := 0.0
	for i, v := range values {
		bars = append(bars, chart.Value{
			Label: labels[i],
			Value: v,
			Style: chart.Style{
				FillColor:   drawing.ParseColor(models.PaletteColor(i)),
				StrokeColor: drawing.ParseColor(models.PaletteColor(i)),
			},
		})
		top = math.Max(top, v)
	}
	if top <= 0 {
		top = 1
	}

	// leave room for the axis and split the rest between bars and gaps
	slot := (r.Width - 100) / (2 * len(bars))
	if slot < 2 {
		slot = 2
	}

	return chart.BarChart{
		Title:        title,
		TitleStyle:   titleStyle(theme),
		ColorPalette: themePalette{theme},
		Background:   background(),
		Width:        r.Width,
		Height:       r.Height,
		Bars:         bars,
		BarWidth:     slot,
		BarSpacing:   slot,
		XAxis:        axisStyle(theme),
		YAxis: chart.YAxis{
			Style: axisStyle(theme),
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
	}
}

func categoryTicks(categories []string) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(categories))
	for i, c := range categories {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: c})
	}
	return ticks
}

func (r *Renderer) lineChart(data models.NeutralChartData, theme models.Theme) *chart.Chart {
	graph := &chart.Chart{
		Title:        data.Title,
		TitleStyle:   titleStyle(theme),
		ColorPalette: themePalette{theme},
		Background:   background(),
		Width:        r.Width,
		Height:       r.Height,
		XAxis:        chart.XAxis{Style: axisStyle(theme), Ticks: categoryTicks(data.Categories)},
		YAxis:        chart.YAxis{Style: axisStyle(theme)},
	}
	for i, s := range data.Series {
		xs := make([]float64, len(s.Values))
		for j := range xs {
			xs[j] = float64(j)
		}
		color := seriesColor(s, i)
		style := chart.Style{StrokeColor: color, StrokeWidth: 2}
		if s.Fill {
			style.FillColor = color.WithAlpha(64)
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: xs,
			YValues: s.Values,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph
}

func (r *Renderer) scatterChart(data models.NeutralChartData, theme models.Theme) *chart.Chart {
	graph := &chart.Chart{
		Title:        data.Title,
		TitleStyle:   titleStyle(theme),
		ColorPalette: themePalette{theme},
		Background:   background(),
		Width:        r.Width,
		Height:       r.Height,
		XAxis:        chart.XAxis{Name: "Price", Style: axisStyle(theme)},
		YAxis:        chart.YAxis{Name: "Performance", Style: axisStyle(theme)},
	}
	for i, s := range data.Series {
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		color := seriesColor(s, i)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    color,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph
}

func (r *Renderer) pieChart(data models.NeutralChartData, theme models.Theme) chart.PieChart {
	s := data.Series[0]
	values := make([]chart.Value, 0, len(s.Values))
	for i, v := range s.Values {
		values = append(values, chart.Value{
			Label: label(data.Categories, i),
			Value: v,
			Style: chart.Style{
				FillColor:   drawing.ParseColor(models.PaletteColor(i)),
				StrokeColor: drawing.ParseColor(theme.BorderColor()),
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	return chart.PieChart{
		Title:        data.Title,
		TitleStyle:   titleStyle(theme),
		ColorPalette: themePalette{theme},
		Background:   background(),
		Width:        r.Width,
		Height:       r.Height,
		Values:       values,
	}
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
