package snapshot

import "chartdeck/internal/models"

// Flatten reduces any dataset to one labelled value per category so it can be
// drawn as a plain bar chart:
//
//	bar                  values summed across series
//	line, radar          first series
//	pie, funnel, gauge   the single series
//	scatter              mean y per series
//	heatmap              totals per hour
//	candlestick          closing prices
//	boxplot              medians
//	treemap, sunburst    top-level totals
func Flatten(data models.NeutralChartData) ([]string, []float64) {
	if data.IsEmpty() {
		return nil, nil
	}
	first := data.Series[0]

	switch data.Kind {
	case models.KindBar:
		sums := make([]float64, len(data.Categories))
		for _, s := range data.Series {
			for i, v := range s.Values {
				if i < len(sums) {
					sums[i] += v
				}
			}
		}
		return data.Categories, sums

	case models.KindLine, models.KindRadar, models.KindPie, models.KindFunnel, models.KindGauge:
		return labels(data.Categories, len(first.Values)), first.Values

	case models.KindScatter:
		names := make([]string, 0, len(data.Series))
		means := make([]float64, 0, len(data.Series))
		for _, s := range data.Series {
			var sum float64
			for _, p := range s.Points {
				sum += p.Y
			}
			mean := 0.0
			if len(s.Points) > 0 {
				mean = sum / float64(len(s.Points))
			}
			names = append(names, s.Name)
			means = append(means, mean)
		}
		return names, means

	case models.KindHeatmap:
		totals := make([]float64, len(data.Categories))
		for _, c := range first.Cells {
			if c.X >= 0 && c.X < len(totals) {
				totals[c.X] += c.Value
			}
		}
		return data.Categories, totals

	case models.KindCandlestick:
		closes := make([]float64, 0, len(first.Candles))
		for _, k := range first.Candles {
			closes = append(closes, k.Close)
		}
		return labels(data.Categories, len(closes)), closes

	case models.KindBoxplot:
		medians := make([]float64, 0, len(first.Boxes))
		for _, b := range first.Boxes {
			medians = append(medians, b.Median)
		}
		return labels(data.Categories, len(medians)), medians

	case models.KindTreemap, models.KindSunburst:
		names := make([]string, 0, len(first.Nodes))
		totals := make([]float64, 0, len(first.Nodes))
		for _, n := range first.Nodes {
			names = append(names, n.Name)
			totals = append(totals, n.Total())
		}
		return names, totals
	}
	return nil, nil
}

// labels pads or trims categories to n entries
func labels(categories []string, n int) []string {
	out := make([]string, n)
	copy(out, categories)
	return out
}
