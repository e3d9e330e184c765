package charts

import (
	"math"
	"strconv"

	"chartdeck/internal/models"
)

func newHighchartsAdapter() *dispatch {
	return &dispatch{
		backend: models.BackendHighcharts,
		mappers: map[models.ChartKind]mapper{
			models.KindBar:         highchartsBar,
			models.KindPie:         highchartsPie,
			models.KindLine:        highchartsLine,
			models.KindScatter:     highchartsScatter,
			models.KindHeatmap:     highchartsHeatmap,
			models.KindRadar:       highchartsRadar,
			models.KindGauge:       highchartsGauge,
			models.KindFunnel:      highchartsFunnel,
			models.KindTreemap:     highchartsTreemap,
			models.KindSunburst:    highchartsSunburst,
			models.KindCandlestick: highchartsCandlestick,
			models.KindBoxplot:     highchartsBoxplot,
		},
	}
}

// highchartsBase returns the options shared by every Highcharts payload
func highchartsBase(chartType string, t models.Theme) Payload {
	return Payload{
		"chart":   map[string]interface{}{"type": chartType, "backgroundColor": "transparent"},
		"title":   map[string]interface{}{"text": nil},
		"colors":  models.Palette,
		"credits": map[string]interface{}{"enabled": false},
		"legend": map[string]interface{}{
			"itemStyle": map[string]interface{}{"color": t.TextColor()},
		},
	}
}

func highchartsLabels(t models.Theme) map[string]interface{} {
	return map[string]interface{}{"style": map[string]interface{}{"color": t.TextColor()}}
}

func highchartsCategoryAxis(categories []string, t models.Theme) map[string]interface{} {
	return map[string]interface{}{
		"categories": categories,
		"lineColor":  t.TextColor(),
		"labels":     highchartsLabels(t),
	}
}

func highchartsValueAxis(title string, t models.Theme) map[string]interface{} {
	var text interface{}
	if title != "" {
		text = title
	}
	return map[string]interface{}{
		"title":         map[string]interface{}{"text": text, "style": map[string]interface{}{"color": t.TextColor()}},
		"gridLineColor": t.GridColor(),
		"labels":        highchartsLabels(t),
	}
}

func highchartsBar(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("column", t)
	p["xAxis"] = highchartsCategoryAxis(data.Categories, t)
	p["yAxis"] = highchartsValueAxis("", t)
	p["tooltip"] = map[string]interface{}{"shared": true}

	series := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		series = append(series, map[string]interface{}{
			"name":  s.Name,
			"data":  s.Values,
			"color": seriesColor(s, i),
		})
	}
	p["series"] = series
	return p
}

func highchartsLine(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("spline", t)
	p["xAxis"] = highchartsCategoryAxis(data.Categories, t)
	p["yAxis"] = highchartsValueAxis("", t)
	p["tooltip"] = map[string]interface{}{"shared": true}

	series := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		color := seriesColor(s, i)
		entry := map[string]interface{}{
			"name":  s.Name,
			"data":  s.Values,
			"color": color,
		}
		if s.Fill {
			entry["type"] = "areaspline"
			entry["fillColor"] = map[string]interface{}{
				"linearGradient": map[string]interface{}{"x1": 0, "y1": 0, "x2": 0, "y2": 1},
				"stops": []interface{}{
					[]interface{}{0, rgba(color, 0.5)},
					[]interface{}{1, rgba(color, 0.1)},
				},
			}
		}
		series = append(series, entry)
	}
	p["series"] = series
	return p
}

func highchartsPie(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("pie", t)
	p["tooltip"] = map[string]interface{}{
		"pointFormat": "{series.name}: <b>{point.y}</b> ({point.percentage:.1f}%)",
	}
	p["plotOptions"] = map[string]interface{}{
		"pie": map[string]interface{}{
			"innerSize":    "57%",
			"showInLegend": true,
			"dataLabels": map[string]interface{}{
				"enabled": true,
				"format":  "{point.name}<br>{point.percentage:.1f}%",
				"style":   map[string]interface{}{"color": t.TextColor()},
			},
		},
	}

	s := data.Series[0]
	points := make([]interface{}, 0, len(s.Values))
	for i, v := range s.Values {
		points = append(points, map[string]interface{}{"name": label(data.Categories, i), "y": v})
	}
	p["series"] = []interface{}{map[string]interface{}{"name": data.SeriesName, "data": points}}
	return p
}

func highchartsScatter(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("scatter", t)
	x := highchartsValueAxis("Price", t)
	x["lineColor"] = t.TextColor()
	p["xAxis"] = x
	p["yAxis"] = highchartsValueAxis("Performance", t)
	p["tooltip"] = map[string]interface{}{
		"pointFormat": "X: {point.x:.2f}<br/>Y: {point.y:.2f}",
	}

	series := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		points := make([]interface{}, 0, len(s.Points))
		for _, pt := range s.Points {
			points = append(points, []float64{pt.X, pt.Y})
		}
		series = append(series, map[string]interface{}{
			"name":   s.Name,
			"data":   points,
			"color":  seriesColor(s, i),
			"marker": map[string]interface{}{"radius": 4},
		})
	}
	p["series"] = series
	return p
}

func highchartsHeatmap(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("heatmap", t)
	p["title"] = map[string]interface{}{
		"text":  data.Title,
		"style": map[string]interface{}{"color": t.TextColor(), "fontSize": "14px"},
	}
	p["xAxis"] = highchartsCategoryAxis(data.Categories, t)
	y := highchartsCategoryAxis(data.Rows, t)
	y["title"] = nil
	p["yAxis"] = y

	stops := make([]interface{}, 0, len(models.HeatmapColors))
	last := float64(len(models.HeatmapColors) - 1)
	for i, c := range models.HeatmapColors {
		stops = append(stops, []interface{}{float64(i) / last, c})
	}
	p["colorAxis"] = map[string]interface{}{"min": 0, "max": heatmapScaleMax, "stops": stops}
	p["legend"] = map[string]interface{}{
		"align":         "center",
		"verticalAlign": "bottom",
		"itemStyle":     map[string]interface{}{"color": t.TextColor()},
	}
	p["tooltip"] = map[string]interface{}{
		"format": "{series.xAxis.categories.(point.x)} on {series.yAxis.categories.(point.y)}<br/>Activity Level: {point.value}",
	}

	s := data.Series[0]
	cells := make([]interface{}, 0, len(s.Cells))
	for _, c := range s.Cells {
		cells = append(cells, []interface{}{c.X, c.Y, c.Value})
	}
	p["series"] = []interface{}{map[string]interface{}{
		"name":        s.Name,
		"data":        cells,
		"borderWidth": 0,
		"dataLabels":  map[string]interface{}{"enabled": false},
	}}
	return p
}

func highchartsRadar(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("line", t)
	p["chart"] = map[string]interface{}{"polar": true, "type": "line", "backgroundColor": "transparent"}
	p["pane"] = map[string]interface{}{"size": "80%"}
	p["xAxis"] = map[string]interface{}{
		"categories":        data.Categories,
		"tickmarkPlacement": "on",
		"lineWidth":         0,
		"gridLineColor":     t.GridColor(),
		"labels":            highchartsLabels(t),
	}
	p["yAxis"] = map[string]interface{}{
		"gridLineInterpolation": "polygon",
		"gridLineColor":         t.GridColor(),
		"lineWidth":             0,
		"min":                   0,
		"labels":                highchartsLabels(t),
	}
	p["tooltip"] = map[string]interface{}{"shared": true}
	p["legend"] = map[string]interface{}{
		"verticalAlign": "bottom",
		"itemStyle":     map[string]interface{}{"color": t.TextColor()},
	}

	series := make([]interface{}, 0, len(data.Series))
	for i, s := range data.Series {
		color := seriesColor(s, i)
		series = append(series, map[string]interface{}{
			"name":           s.Name,
			"data":           s.Values,
			"color":          color,
			"type":           "area",
			"fillColor":      rgba(color, 0.3),
			"pointPlacement": "on",
		})
	}
	p["series"] = series
	return p
}

func highchartsGauge(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("gauge", t)
	p["pane"] = map[string]interface{}{
		"startAngle": -150,
		"endAngle":   150,
		"center":     []string{"50%", "60%"},
		"size":       "90%",
		"background": nil,
	}

	bands := make([]interface{}, 0, len(gaugeBands))
	from := 0.0
	for _, b := range gaugeBands {
		to := math.Round(b.Upto * gaugeMax)
		bands = append(bands, map[string]interface{}{
			"from":      from,
			"to":        to,
			"color":     b.Color,
			"thickness": 15,
		})
		from = to
	}
	p["yAxis"] = map[string]interface{}{
		"min":             0,
		"max":             gaugeMax,
		"tickColor":       t.TextColor(),
		"minorTickColor":  t.TextColor(),
		"labels":          highchartsLabels(t),
		"plotBands":       bands,
		"title":           map[string]interface{}{"text": label(data.Categories, 0), "style": map[string]interface{}{"color": t.TextColor()}},
		"lineWidth":       0,
		"minorTickLength": 5,
	}
	p["series"] = []interface{}{map[string]interface{}{
		"name": data.SeriesName,
		"data": []float64{firstValue(data)},
		"dataLabels": map[string]interface{}{
			"format": "{y}%",
			"style":  map[string]interface{}{"color": t.TextColor(), "fontSize": "20px"},
		},
		"tooltip": map[string]interface{}{"valueSuffix": "%"},
	}}
	return p
}

func highchartsFunnel(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("funnel", t)
	p["plotOptions"] = map[string]interface{}{
		"funnel": map[string]interface{}{
			"neckWidth":    "30%",
			"neckHeight":   "25%",
			"width":        "80%",
			"reversed":     false,
			"showInLegend": true,
			"dataLabels": map[string]interface{}{
				"enabled": true,
				"inside":  true,
				"format":  "{point.name}",
				"color":   "#fff",
			},
		},
	}

	s := data.Series[0]
	points := make([]interface{}, 0, len(s.Values))
	for i, v := range s.Values {
		points = append(points, map[string]interface{}{
			"name":  label(data.Categories, i),
			"y":     v,
			"color": models.PaletteColor(i),
		})
	}
	p["series"] = []interface{}{map[string]interface{}{"name": data.SeriesName, "data": points}}
	return p
}

// flattenTree encodes a node tree as Highcharts id/parent points. Only
// leaves carry a value; parents are sized by their children.
func flattenTree(nodes []models.TreeNode, parent string, out []interface{}) []interface{} {
	for i, n := range nodes {
		id := strconv.Itoa(i)
		if parent != "" {
			id = parent + "." + id
		}
		point := map[string]interface{}{"id": id, "name": n.Name}
		if parent != "" {
			point["parent"] = parent
		}
		if n.Color != "" {
			point["color"] = n.Color
		}
		if len(n.Children) == 0 {
			point["value"] = n.Value
		}
		out = append(out, point)
		out = flattenTree(n.Children, id, out)
	}
	return out
}

func highchartsTreemap(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("treemap", t)
	p["tooltip"] = map[string]interface{}{"pointFormat": "{point.name}<br/>Value: {point.value}"}
	p["series"] = []interface{}{map[string]interface{}{
		"type":                "treemap",
		"name":                data.SeriesName,
		"layoutAlgorithm":     "squarified",
		"allowTraversingTree": true,
		"levelIsConstant":     false,
		"borderColor":         t.BorderColor(),
		"data":                flattenTree(data.Series[0].Nodes, "", nil),
		"levels": []interface{}{
			map[string]interface{}{
				"level":       1,
				"borderWidth": 3,
				"dataLabels":  map[string]interface{}{"enabled": true, "style": map[string]interface{}{"fontWeight": "bold"}},
			},
			map[string]interface{}{"level": 2, "borderWidth": 1, "colorVariation": map[string]interface{}{"key": "brightness", "to": 0.35}},
		},
	}}
	return p
}

func highchartsSunburst(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("sunburst", t)
	p["tooltip"] = map[string]interface{}{"pointFormat": "{point.name}: {point.value}"}

	points := []interface{}{map[string]interface{}{"id": "root", "name": data.SeriesName}}
	for _, pt := range flattenTree(data.Series[0].Nodes, "", nil) {
		m := pt.(map[string]interface{})
		if _, ok := m["parent"]; !ok {
			m["parent"] = "root"
		}
		points = append(points, m)
	}

	p["series"] = []interface{}{map[string]interface{}{
		"type":                "sunburst",
		"name":                data.SeriesName,
		"data":                points,
		"allowTraversingTree": true,
		"borderColor":         t.BorderColor(),
		"borderWidth":         2,
		"dataLabels":          map[string]interface{}{"rotationMode": "circular", "style": map[string]interface{}{"color": t.TextColor()}},
		"levels": []interface{}{
			map[string]interface{}{"level": 1, "levelIsConstant": false, "dataLabels": map[string]interface{}{"filter": map[string]interface{}{"property": "outerArcLength", "operator": ">", "value": 64}}},
			map[string]interface{}{"level": 2, "colorByPoint": true},
			map[string]interface{}{"level": 3, "colorVariation": map[string]interface{}{"key": "brightness", "to": -0.5}},
		},
	}}
	return p
}

func highchartsCandlestick(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("candlestick", t)
	p["xAxis"] = highchartsCategoryAxis(data.Categories, t)
	y := highchartsValueAxis("", t)
	y["startOnTick"] = false
	y["endOnTick"] = false
	p["yAxis"] = y
	p["tooltip"] = map[string]interface{}{"split": false, "shared": true}

	s := data.Series[0]
	points := make([]interface{}, 0, len(s.Candles))
	for _, k := range s.Candles {
		points = append(points, []float64{k.Open, k.High, k.Low, k.Close})
	}
	p["series"] = []interface{}{map[string]interface{}{
		"type":        "candlestick",
		"name":        s.Name,
		"data":        points,
		"color":       fallingColor,
		"lineColor":   fallingColor,
		"upColor":     risingColor,
		"upLineColor": risingColor,
	}}
	return p
}

func highchartsBoxplot(data models.NeutralChartData, t models.Theme) Payload {
	p := highchartsBase("boxplot", t)
	p["xAxis"] = highchartsCategoryAxis(data.Categories, t)
	p["yAxis"] = highchartsValueAxis("Performance Score", t)
	p["legend"] = map[string]interface{}{"enabled": false}

	s := data.Series[0]
	points := make([]interface{}, 0, len(s.Boxes))
	for _, b := range s.Boxes {
		points = append(points, b.Values())
	}
	p["series"] = []interface{}{map[string]interface{}{
		"name":      s.Name,
		"data":      points,
		"fillColor": rgba(seriesColor(s, 0), 0.3),
		"color":     seriesColor(s, 0),
		"tooltip":   map[string]interface{}{"headerFormat": "<em>{point.key}</em><br/>"},
	}}
	return p
}
