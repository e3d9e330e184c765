package snapshot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chartdeck/internal/models"
)

// themePalette maps the dashboard theme onto go-chart's palette interface
type themePalette struct {
	theme models.Theme
}

var _ chart.ColorPalette = themePalette{}

func (p themePalette) BackgroundColor() drawing.Color {
	return drawing.ParseColor(p.theme.Background())
}

func (p themePalette) BackgroundStrokeColor() drawing.Color {
	return p.BackgroundColor()
}

func (p themePalette) CanvasColor() drawing.Color {
	return p.BackgroundColor()
}

func (p themePalette) CanvasStrokeColor() drawing.Color {
	return drawing.ParseColor(p.theme.GridColor())
}

func (p themePalette) AxisStrokeColor() drawing.Color {
	return drawing.ParseColor(p.theme.TextColor())
}

func (p themePalette) TextColor() drawing.Color {
	return drawing.ParseColor(p.theme.TextColor())
}

func (p themePalette) GetSeriesColor(index int) drawing.Color {
	return drawing.ParseColor(models.PaletteColor(index))
}

// seriesColor prefers the dataset's own color over the palette
func seriesColor(s models.Series, i int) drawing.Color {
	if s.Color != "" {
		return drawing.ParseColor(s.Color)
	}
	return drawing.ParseColor(models.PaletteColor(i))
}
