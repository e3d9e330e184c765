package charts

import (
	"math"

	"chartdeck/internal/models"
)

// Chart.js has no heatmap, gauge, funnel, hierarchical or financial chart
// types. Those kinds are drawn with the closest built-in type instead.
func newChartJSAdapter() *dispatch {
	return &dispatch{
		backend: models.BackendChartJS,
		mappers: map[models.ChartKind]mapper{
			models.KindBar:         chartjsBar,
			models.KindPie:         chartjsPie,
			models.KindLine:        chartjsLine,
			models.KindScatter:     chartjsScatter,
			models.KindRadar:       chartjsRadar,
			models.KindHeatmap:     chartjsHeatmap,
			models.KindGauge:       chartjsGauge,
			models.KindFunnel:      chartjsFunnel,
			models.KindTreemap:     chartjsTree,
			models.KindSunburst:    chartjsTree,
			models.KindCandlestick: chartjsCandlestick,
			models.KindBoxplot:     chartjsBoxplot,
		},
		degraded: map[models.ChartKind]bool{
			models.KindHeatmap:     true,
			models.KindGauge:       true,
			models.KindFunnel:      true,
			models.KindTreemap:     true,
			models.KindSunburst:    true,
			models.KindCandlestick: true,
			models.KindBoxplot:     true,
		},
	}
}

func chartjsPayload(chartType string, labels []string, datasets []interface{}, options map[string]interface{}) Payload {
	if labels == nil {
		labels = []string{}
	}
	return Payload{
		"type": chartType,
		"data": map[string]interface{}{
			"labels":   labels,
			"datasets": datasets,
		},
		"options": options,
	}
}

// chartjsOptions returns the base options; withScales adds themed x/y scales
func chartjsOptions(t models.Theme, withScales bool) map[string]interface{} {
	o := map[string]interface{}{
		"responsive":          true,
		"maintainAspectRatio": false,
		"animation":           map[string]interface{}{"duration": 0},
		"plugins": map[string]interface{}{
			"legend": map[string]interface{}{
				"display":  true,
				"position": "top",
				"labels":   map[string]interface{}{"color": t.TextColor()},
			},
		},
	}
	if withScales {
		o["scales"] = map[string]interface{}{
			"x": chartjsScale(t, ""),
			"y": chartjsScale(t, ""),
		}
	}
	return o
}

func chartjsScale(t models.Theme, title string) map[string]interface{} {
	s := map[string]interface{}{
		"ticks": map[string]interface{}{"color": t.TextColor()},
		"grid":  map[string]interface{}{"color": t.GridColor()},
	}
	if title != "" {
		s["title"] = map[string]interface{}{"display": true, "text": title, "color": t.TextColor()}
	}
	return s
}

func paletteSlice(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = models.PaletteColor(i)
	}
	return colors
}

func chartjsBar(data models.NeutralChartData, t models.Theme) Payload {
	datasets := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		datasets = append(datasets, map[string]interface{}{
			"label":           s.Name,
			"data":            s.Values,
			"backgroundColor": seriesColor(s, i),
		})
	}
	return chartjsPayload("bar", data.Categories, datasets, chartjsOptions(t, true))
}

func chartjsLine(data models.NeutralChartData, t models.Theme) Payload {
	datasets := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		color := seriesColor(s, i)
		datasets = append(datasets, map[string]interface{}{
			"label":           s.Name,
			"data":            s.Values,
			"borderColor":     color,
			"backgroundColor": rgba(color, 0.2),
			"fill":            s.Fill,
			"tension":         0.4,
		})
	}
	return chartjsPayload("line", data.Categories, datasets, chartjsOptions(t, true))
}

func chartjsPie(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	datasets := []interface{}{map[string]interface{}{
		"label":           data.SeriesName,
		"data":            s.Values,
		"backgroundColor": paletteSlice(len(s.Values)),
		"borderColor":     t.BorderColor(),
	}}
	return chartjsPayload("pie", data.Categories, datasets, chartjsOptions(t, false))
}

func chartjsScatter(data models.NeutralChartData, t models.Theme) Payload {
	datasets := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		points := make([]interface{}, 0, len(s.Points))
		for _, pt := range s.Points {
			points = append(points, map[string]interface{}{"x": pt.X, "y": pt.Y})
		}
		datasets = append(datasets, map[string]interface{}{
			"label":           s.Name,
			"data":            points,
			"backgroundColor": seriesColor(s, i),
			"pointRadius":     4,
		})
	}
	o := chartjsOptions(t, false)
	o["scales"] = map[string]interface{}{
		"x": chartjsScale(t, "Price"),
		"y": chartjsScale(t, "Performance"),
	}
	return chartjsPayload("scatter", nil, datasets, o)
}

func chartjsRadar(data models.NeutralChartData, t models.Theme) Payload {
	datasets := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		color := seriesColor(s, i)
		datasets = append(datasets, map[string]interface{}{
			"label":           s.Name,
			"data":            s.Values,
			"borderColor":     color,
			"backgroundColor": rgba(color, 0.3),
		})
	}
	o := chartjsOptions(t, false)
	o["scales"] = map[string]interface{}{
		"r": map[string]interface{}{
			"angleLines":  map[string]interface{}{"color": t.GridColor()},
			"grid":        map[string]interface{}{"color": t.GridColor()},
			"pointLabels": map[string]interface{}{"color": t.TextColor()},
			"ticks":       map[string]interface{}{"color": t.TextColor(), "backdropColor": "transparent"},
		},
	}
	return chartjsPayload("radar", data.Categories, datasets, o)
}

// chartjsHeatmap collapses the day/hour grid into a bar of totals per hour
func chartjsHeatmap(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	totals := make([]float64, len(data.Categories))
	for _, c := range s.Cells {
		if c.X >= 0 && c.X < len(totals) {
			totals[c.X] += c.Value
		}
	}
	datasets := []interface{}{map[string]interface{}{
		"label":           s.Name,
		"data":            totals,
		"backgroundColor": models.PaletteColor(0),
	}}
	return chartjsPayload("bar", data.Categories, datasets, chartjsOptions(t, true))
}

// chartjsGauge draws the value as the filled part of a half doughnut
func chartjsGauge(data models.NeutralChartData, t models.Theme) Payload {
	v := math.Max(0, math.Min(gaugeMax, firstValue(data)))
	color := gaugeBands[len(gaugeBands)-1].Color
	for _, b := range gaugeBands {
		if v <= b.Upto*gaugeMax {
			color = b.Color
			break
		}
	}
	datasets := []interface{}{map[string]interface{}{
		"label":           data.SeriesName,
		"data":            []float64{v, gaugeMax - v},
		"backgroundColor": []string{color, t.GridColor()},
		"borderWidth":     0,
		"circumference":   180,
		"rotation":        270,
	}}
	o := chartjsOptions(t, false)
	o["cutout"] = "70%"
	return chartjsPayload("doughnut", []string{label(data.Categories, 0), ""}, datasets, o)
}

// chartjsFunnel draws the stages as horizontal bars
func chartjsFunnel(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	datasets := []interface{}{map[string]interface{}{
		"label":           data.SeriesName,
		"data":            s.Values,
		"backgroundColor": paletteSlice(len(s.Values)),
	}}
	o := chartjsOptions(t, true)
	o["indexAxis"] = "y"
	return chartjsPayload("bar", data.Categories, datasets, o)
}

// chartjsTree draws the top level of a hierarchy as a doughnut
func chartjsTree(data models.NeutralChartData, t models.Theme) Payload {
	nodes := data.Series[0].Nodes
	labels := make([]string, 0, len(nodes))
	values := make([]float64, 0, len(nodes))
	colors := make([]string, 0, len(nodes))
	for i, n := range nodes {
		labels = append(labels, n.Name)
		values = append(values, n.Total())
		if n.Color != "" {
			colors = append(colors, n.Color)
		} else {
			colors = append(colors, models.PaletteColor(i))
		}
	}
	datasets := []interface{}{map[string]interface{}{
		"label":           data.SeriesName,
		"data":            values,
		"backgroundColor": colors,
		"borderColor":     t.BorderColor(),
	}}
	return chartjsPayload("doughnut", labels, datasets, chartjsOptions(t, false))
}

// chartjsCandlestick draws each day as a floating bar spanning open to close
// over a thin bar spanning low to high
func chartjsCandlestick(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	bodies := make([]interface{}, 0, len(s.Candles))
	wicks := make([]interface{}, 0, len(s.Candles))
	colors := make([]string, 0, len(s.Candles))
	for _, k := range s.Candles {
		bodies = append(bodies, []float64{k.Open, k.Close})
		wicks = append(wicks, []float64{k.Low, k.High})
		if k.Rising() {
			colors = append(colors, risingColor)
		} else {
			colors = append(colors, fallingColor)
		}
	}
	datasets := []interface{}{
		map[string]interface{}{
			"label":           s.Name,
			"data":            bodies,
			"backgroundColor": colors,
			"grouped":         false,
			"order":           1,
		},
		map[string]interface{}{
			"label":           "Range",
			"data":            wicks,
			"backgroundColor": colors,
			"barPercentage":   0.1,
			"grouped":         false,
			"order":           2,
		},
	}
	return chartjsPayload("bar", data.Categories, datasets, chartjsOptions(t, true))
}

// chartjsBoxplot draws the interquartile range as floating bars with the
// median as a point series on top
func chartjsBoxplot(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	boxes := make([]interface{}, 0, len(s.Boxes))
	medians := make([]float64, 0, len(s.Boxes))
	for _, b := range s.Boxes {
		boxes = append(boxes, []float64{b.Q1, b.Q3})
		medians = append(medians, b.Median)
	}
	color := seriesColor(s, 0)
	datasets := []interface{}{
		map[string]interface{}{
			"label":           s.Name,
			"data":            boxes,
			"backgroundColor": rgba(color, 0.5),
			"borderColor":     color,
			"borderWidth":     1,
		},
		map[string]interface{}{
			"type":        "line",
			"label":       "Median",
			"data":        medians,
			"showLine":    false,
			"pointStyle":  "line",
			"pointRadius": 12,
			"borderColor": t.TextColor(),
			"borderWidth": 2,
		},
	}
	o := chartjsOptions(t, true)
	o["scales"].(map[string]interface{})["y"] = chartjsScale(t, "Performance Score")
	return chartjsPayload("bar", data.Categories, datasets, o)
}
