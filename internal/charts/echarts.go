package charts

import (
	"encoding/json"
	"math"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"chartdeck/internal/models"
)

// optionSource is any go-echarts chart that can emit its option object
type optionSource interface {
	Validate()
	JSON() map[string]interface{}
}

func newEChartsAdapter() *dispatch {
	return &dispatch{
		backend: models.BackendECharts,
		mappers: map[models.ChartKind]mapper{
			models.KindBar:         echartsBar,
			models.KindPie:         echartsPie,
			models.KindLine:        echartsLine,
			models.KindScatter:     echartsScatter,
			models.KindHeatmap:     echartsHeatmap,
			models.KindRadar:       echartsRadar,
			models.KindGauge:       echartsGauge,
			models.KindFunnel:      echartsFunnel,
			models.KindTreemap:     echartsTreemap,
			models.KindSunburst:    echartsSunburst,
			models.KindCandlestick: echartsCandlestick,
			models.KindBoxplot:     echartsBoxplot,
		},
	}
}

// optionPayload validates the chart and converts its option object into a
// plain JSON-shaped payload.
func optionPayload(c optionSource) Payload {
	c.Validate()
	raw, err := json.Marshal(c.JSON())
	if err != nil {
		return Payload{}
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}
	}
	return p
}

func textStyle(t models.Theme) *opts.TextStyle {
	return &opts.TextStyle{Color: t.TextColor()}
}

func axisLine(t models.Theme) *opts.AxisLine {
	return &opts.AxisLine{LineStyle: &opts.LineStyle{Color: t.TextColor()}}
}

func splitLine(t models.Theme) *opts.SplitLine {
	return &opts.SplitLine{LineStyle: &opts.LineStyle{Color: t.GridColor()}}
}

func categoryAxis(t models.Theme) opts.XAxis {
	return opts.XAxis{
		Type:      "category",
		AxisLine:  axisLine(t),
		AxisLabel: &opts.AxisLabel{Color: t.TextColor()},
	}
}

func valueAxis(t models.Theme, name string) opts.YAxis {
	return opts.YAxis{
		Type:      "value",
		Name:      name,
		AxisLine:  axisLine(t),
		AxisLabel: &opts.AxisLabel{Color: t.TextColor()},
		SplitLine: splitLine(t),
	}
}

func topLegend(t models.Theme, names []string) opts.Legend {
	return opts.Legend{Data: names, Top: "0", TextStyle: textStyle(t)}
}

func containedGrid() opts.Grid {
	return opts.Grid{Top: "40", Left: "3%", Right: "4%", Bottom: "3%", ContainLabel: opts.Bool(true)}
}

func echartsBar(data models.NeutralChartData, t models.Theme) Payload {
	c := echarts.NewBar()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		echarts.WithLegendOpts(topLegend(t, seriesNames(data))),
		echarts.WithGridOpts(containedGrid()),
		echarts.WithXAxisOpts(categoryAxis(t)),
		echarts.WithYAxisOpts(valueAxis(t, "")),
	)
	c.SetXAxis(data.Categories)
	for i, s := range data.Series {
		items := make([]opts.BarData, 0, len(s.Values))
		for _, v := range s.Values {
			items = append(items, opts.BarData{Value: v})
		}
		c.AddSeries(s.Name, items, echarts.WithItemStyleOpts(opts.ItemStyle{Color: seriesColor(s, i)}))
	}
	return optionPayload(c)
}

func echartsLine(data models.NeutralChartData, t models.Theme) Payload {
	c := echarts.NewLine()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		echarts.WithLegendOpts(topLegend(t, seriesNames(data))),
		echarts.WithGridOpts(containedGrid()),
		echarts.WithXAxisOpts(categoryAxis(t)),
		echarts.WithYAxisOpts(valueAxis(t, "")),
	)
	c.SetXAxis(data.Categories)
	for i, s := range data.Series {
		items := make([]opts.LineData, 0, len(s.Values))
		for _, v := range s.Values {
			items = append(items, opts.LineData{Value: v})
		}
		c.AddSeries(s.Name, items,
			echarts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: seriesColor(s, i)}),
		)
	}

	p := optionPayload(c)
	merge(p.object("xAxis"), map[string]interface{}{"boundaryGap": false})
	for i, s := range data.Series {
		if !s.Fill {
			continue
		}
		color := seriesColor(s, i)
		merge(p.series(i), map[string]interface{}{
			"areaStyle": map[string]interface{}{
				"color": map[string]interface{}{
					"type": "linear", "x": 0, "y": 0, "x2": 0, "y2": 1,
					"colorStops": []interface{}{
						map[string]interface{}{"offset": 0, "color": rgba(color, 0.5)},
						map[string]interface{}{"offset": 1, "color": rgba(color, 0.1)},
					},
				},
			},
		})
	}
	return p
}

func echartsPie(data models.NeutralChartData, t models.Theme) Payload {
	c := echarts.NewPie()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "item", Formatter: "{a} <br/>{b}: {c} ({d}%)"}),
		echarts.WithLegendOpts(opts.Legend{
			Orient:       "vertical",
			Left:         "left",
			Data:         data.Categories,
			TextStyle:    textStyle(t),
			SelectedMode: "multiple",
		}),
	)
	s := data.Series[0]
	items := make([]opts.PieData, 0, len(s.Values))
	for i, v := range s.Values {
		items = append(items, opts.PieData{Name: label(data.Categories, i), Value: v})
	}
	c.AddSeries(data.SeriesName, items,
		echarts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"40%", "70%"},
			Center: []string{"60%", "50%"},
		}),
		echarts.WithEmphasisOpts(opts.Emphasis{
			ItemStyle: &opts.ItemStyle{ShadowBlur: 10, ShadowColor: "rgba(0, 0, 0, 0.5)"},
		}),
		echarts.WithLabelOpts(opts.Label{Color: t.TextColor(), Formatter: "{b}\n{d}%"}),
	)
	return optionPayload(c)
}

func echartsScatter(data models.NeutralChartData, t models.Theme) Payload {
	c := echarts.NewScatter()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "item", Formatter: "{a}<br/>{c}"}),
		echarts.WithLegendOpts(topLegend(t, seriesNames(data))),
		echarts.WithGridOpts(containedGrid()),
		echarts.WithXAxisOpts(opts.XAxis{
			Type:         "value",
			Name:         "Price",
			NameLocation: "middle",
			NameGap:      25,
			AxisLine:     axisLine(t),
			AxisLabel:    &opts.AxisLabel{Color: t.TextColor()},
			SplitLine:    splitLine(t),
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Type:         "value",
			Name:         "Performance",
			NameLocation: "middle",
			NameGap:      35,
			AxisLine:     axisLine(t),
			AxisLabel:    &opts.AxisLabel{Color: t.TextColor()},
			SplitLine:    splitLine(t),
		}),
	)
	for i, s := range data.Series {
		items := make([]opts.ScatterData, 0, len(s.Points))
		for _, pt := range s.Points {
			items = append(items, opts.ScatterData{Value: []float64{pt.X, pt.Y}})
		}
		c.AddSeries(s.Name, items,
			echarts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: seriesColor(s, i)}),
		)
	}
	return optionPayload(c)
}

func echartsHeatmap(data models.NeutralChartData, t models.Theme) Payload {
	c := echarts.NewHeatMap()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Position: "top"}),
		echarts.WithTitleOpts(opts.Title{
			Title:      data.Title,
			Left:       "center",
			Top:        "0",
			TitleStyle: &opts.TextStyle{Color: t.TextColor(), FontSize: 14},
		}),
		echarts.WithGridOpts(opts.Grid{Height: "65%", Top: "12%"}),
		echarts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      data.Categories,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLine:  axisLine(t),
			AxisLabel: &opts.AxisLabel{Color: t.TextColor()},
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      data.Rows,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLine:  axisLine(t),
			AxisLabel: &opts.AxisLabel{Color: t.TextColor()},
		}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        heatmapScaleMax,
			Orient:     "horizontal",
			Left:       "center",
			Bottom:     "5%",
			TextStyle:  textStyle(t),
			InRange:    &opts.VisualMapInRange{Color: models.HeatmapColors},
		}),
	)
	s := data.Series[0]
	items := make([]opts.HeatMapData, 0, len(s.Cells))
	for _, cell := range s.Cells {
		items = append(items, opts.HeatMapData{Value: [3]interface{}{cell.X, cell.Y, cell.Value}})
	}
	c.AddSeries(s.Name, items,
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		echarts.WithEmphasisOpts(opts.Emphasis{
			ItemStyle: &opts.ItemStyle{ShadowBlur: 10, ShadowColor: "rgba(0, 0, 0, 0.5)"},
		}),
	)
	return optionPayload(c)
}

// heatmapScaleMax is the upper bound of the activity color scale
const heatmapScaleMax = 50

func echartsRadar(data models.NeutralChartData, t models.Theme) Payload {
	indicators := make([]*opts.Indicator, 0, len(data.Indicators))
	for _, ind := range data.Indicators {
		indicators = append(indicators, &opts.Indicator{Name: ind.Name, Max: float32(ind.Max)})
	}

	c := echarts.NewRadar()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		echarts.WithLegendOpts(opts.Legend{Bottom: "0", TextStyle: textStyle(t), SelectedMode: "multiple"}),
		echarts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator: indicators,
			AxisName:  &opts.AxisName{Color: t.TextColor()},
			SplitLine: splitLine(t),
			SplitArea: &opts.SplitArea{Show: opts.Bool(true), AreaStyle: &opts.AreaStyle{}},
		}),
	)
	for i, s := range data.Series {
		color := seriesColor(s, i)
		c.AddSeries(s.Name, []opts.RadarData{{Name: s.Name, Value: s.Values}},
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			echarts.WithAreaStyleOpts(opts.AreaStyle{Color: rgba(color, 0.3)}),
		)
	}

	p := optionPayload(c)
	if radar := p.object("radar"); radar != nil {
		colors := t.SplitAreaColors()
		radar["splitArea"] = map[string]interface{}{
			"show":      true,
			"areaStyle": map[string]interface{}{"color": []interface{}{colors[0], colors[1]}},
		}
	}
	return p
}

func echartsGauge(data models.NeutralChartData, t models.Theme) Payload {
	name := label(data.Categories, 0)
	c := echarts.NewGauge()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Formatter: "{a} <br/>{b}: {c}%"}),
	)
	c.AddSeries(data.SeriesName, []opts.GaugeData{{Name: name, Value: firstValue(data)}},
		echarts.WithSeriesOpts(func(s *echarts.SingleSeries) {
			s.Radius = "90%"
			s.Center = []string{"50%", "60%"}
			s.Min = 0
			s.Max = gaugeMax
			s.Detail = &opts.Detail{Formatter: "{value}%", Color: t.TextColor(), FontSize: 20}
			s.SplitLine = &opts.SplitLine{LineStyle: &opts.LineStyle{Color: t.TextColor()}}
			s.AxisTick = &opts.AxisTick{LineStyle: &opts.LineStyle{Color: t.TextColor()}}
			s.AxisLabel = &opts.AxisLabel{Color: t.TextColor()}
			s.Title = &opts.Title{OffsetCenter: []string{"0", "-30%"}, TitleStyle: textStyle(t)}
		}),
	)

	p := optionPayload(c)
	stops := make([]interface{}, 0, len(gaugeBands))
	for _, b := range gaugeBands {
		stops = append(stops, []interface{}{b.Upto, b.Color})
	}
	merge(p.series(0), map[string]interface{}{
		"axisLine": map[string]interface{}{
			"lineStyle": map[string]interface{}{"color": stops, "width": 15},
		},
	})
	return p
}

func echartsFunnel(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	c := echarts.NewFunnel()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "item", Formatter: "{a} <br/>{b}: {c}"}),
		echarts.WithLegendOpts(opts.Legend{Data: data.Categories, TextStyle: textStyle(t)}),
	)
	items := make([]opts.FunnelData, 0, len(s.Values))
	for i, v := range s.Values {
		items = append(items, opts.FunnelData{Name: label(data.Categories, i), Value: v})
	}
	c.AddSeries(data.SeriesName, items,
		echarts.WithSeriesOpts(func(ss *echarts.SingleSeries) {
			ss.Sort = "descending"
		}),
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "inside", Color: "#fff"}),
		echarts.WithLabelLineOpts(opts.LabelLine{Show: opts.Bool(false)}),
		echarts.WithItemStyleOpts(opts.ItemStyle{BorderColor: "#fff", BorderWidth: 1}),
		echarts.WithEmphasisOpts(opts.Emphasis{Label: &opts.Label{FontSize: 20}}),
	)

	p := optionPayload(c)
	series := p.series(0)
	merge(series, map[string]interface{}{
		"left":    "10%",
		"top":     60,
		"bottom":  60,
		"width":   "80%",
		"min":     0,
		"max":     math.Max(gaugeMax, maxValue(s.Values)),
		"minSize": "0%",
		"maxSize": "100%",
		"gap":     2,
	})
	if series != nil {
		list, _ := series["data"].([]interface{})
		for i, item := range list {
			merge(item.(map[string]interface{}), map[string]interface{}{
				"itemStyle": map[string]interface{}{"color": models.PaletteColor(i)},
			})
		}
	}
	return p
}

func treeMapNodes(nodes []models.TreeNode) []opts.TreeMapNode {
	out := make([]opts.TreeMapNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, opts.TreeMapNode{
			Name:     n.Name,
			Value:    int(math.Round(n.Total())),
			Children: treeMapNodes(n.Children),
		})
	}
	return out
}

func echartsTreemap(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	c := echarts.NewTreeMap()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Formatter: "{b}<br/>Value: {c}"}),
	)
	c.AddSeries(data.SeriesName, treeMapNodes(s.Nodes),
		echarts.WithSeriesOpts(func(ss *echarts.SingleSeries) {
			ss.Levels = []opts.TreeMapLevel{
				{ItemStyle: &opts.ItemStyle{BorderColor: "#777", GapWidth: 1}},
				{ItemStyle: &opts.ItemStyle{BorderColor: "#555", BorderWidth: 5, GapWidth: 1}, ColorSaturation: []float32{0.35, 0.5}},
			}
		}),
	)

	p := optionPayload(c)
	if series := p.series(0); series != nil {
		colorNodes(series["data"], s.Nodes)
	}
	return p
}

// colorNodes sets itemStyle.color on encoded tree nodes that carry a color
func colorNodes(encoded interface{}, nodes []models.TreeNode) {
	list, _ := encoded.([]interface{})
	for i, item := range list {
		if i >= len(nodes) {
			return
		}
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if nodes[i].Color != "" {
			m["itemStyle"] = map[string]interface{}{"color": nodes[i].Color}
		}
		colorNodes(m["children"], nodes[i].Children)
	}
}

func sunburstNodes(nodes []models.TreeNode) []*opts.SunBurstData {
	out := make([]*opts.SunBurstData, 0, len(nodes))
	for _, n := range nodes {
		d := &opts.SunBurstData{Name: n.Name, Value: n.Value, Children: sunburstNodes(n.Children)}
		if n.Color != "" {
			d.ItemStyle = &opts.ItemStyle{Color: n.Color}
		}
		out = append(out, d)
	}
	return out
}

func echartsSunburst(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	roots := sunburstNodes(s.Nodes)
	items := make([]opts.SunBurstData, 0, len(roots))
	for _, r := range roots {
		items = append(items, *r)
	}

	c := echarts.NewSunburst()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "item", Formatter: "{b}: {c}"}),
	)
	c.AddSeries(data.SeriesName, items,
		echarts.WithSeriesOpts(func(ss *echarts.SingleSeries) {
			ss.Radius = []interface{}{0, "90%"}
			ss.Levels = []interface{}{
				map[string]interface{}{},
				map[string]interface{}{"r0": "15%", "r": "45%", "label": map[string]interface{}{"rotate": 0}},
				map[string]interface{}{"r0": "45%", "r": "70%", "label": map[string]interface{}{"align": "right"}},
				map[string]interface{}{
					"r0": "70%", "r": "72%",
					"label":     map[string]interface{}{"position": "outside", "padding": 3, "silent": false},
					"itemStyle": map[string]interface{}{"borderWidth": 3},
				},
			}
		}),
	)

	p := optionPayload(c)
	merge(p.series(0), map[string]interface{}{
		"label": map[string]interface{}{"rotate": "radial", "color": t.TextColor()},
		"itemStyle": map[string]interface{}{
			"borderRadius": 7,
			"borderColor":  t.BorderColor(),
			"borderWidth":  2,
		},
	})
	return p
}

func echartsCandlestick(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	y := valueAxis(t, "")
	y.Type = ""
	y.Scale = opts.Bool(true)

	c := echarts.NewKLine()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "axis", AxisPointer: &opts.AxisPointer{Type: "cross"}}),
		echarts.WithGridOpts(opts.Grid{Left: "10%", Right: "10%", Bottom: "15%"}),
		echarts.WithXAxisOpts(categoryAxis(t)),
		echarts.WithYAxisOpts(y),
	)
	c.SetXAxis(data.Categories)
	items := make([]opts.KlineData, 0, len(s.Candles))
	for _, k := range s.Candles {
		items = append(items, opts.KlineData{Value: [4]float64{k.Open, k.Close, k.Low, k.High}})
	}
	c.AddSeries(s.Name, items, echarts.WithItemStyleOpts(opts.ItemStyle{
		Color:        risingColor,
		Color0:       fallingColor,
		BorderColor:  risingColor,
		BorderColor0: fallingColor,
	}))
	return optionPayload(c)
}

const (
	risingColor  = "#91cc75"
	fallingColor = "#ee6666"
)

func echartsBoxplot(data models.NeutralChartData, t models.Theme) Payload {
	s := data.Series[0]
	c := echarts.NewBoxPlot()
	c.SetGlobalOptions(
		echarts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		echarts.WithGridOpts(opts.Grid{Left: "10%", Right: "10%", Bottom: "15%"}),
		echarts.WithXAxisOpts(categoryAxis(t)),
		echarts.WithYAxisOpts(valueAxis(t, "Performance Score")),
	)
	c.SetXAxis(data.Categories)
	items := make([]opts.BoxPlotData, 0, len(s.Boxes))
	for i, b := range s.Boxes {
		items = append(items, opts.BoxPlotData{Name: label(data.Categories, i), Value: b.Values()})
	}
	c.AddSeries(s.Name, items, echarts.WithItemStyleOpts(opts.ItemStyle{
		Color:       seriesColor(s, 0),
		BorderColor: t.TextColor(),
	}))
	return optionPayload(c)
}

// label returns labels[i] or an empty string
func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
