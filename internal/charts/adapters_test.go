package charts

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartdeck/internal/models"
	"chartdeck/internal/synth"
)

// decode normalizes a payload through JSON so assertions see the same shapes
// the renderer will.
func decode(t *testing.T, p Payload) map[string]interface{} {
	t.Helper()
	raw, err := p.JSON()
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func list(t *testing.T, v interface{}) []interface{} {
	t.Helper()
	l, ok := v.([]interface{})
	require.True(t, ok, "expected a list, got %T", v)
	return l
}

func obj(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	require.True(t, ok, "expected an object, got %T", v)
	return m
}

func dataset(kind models.ChartKind) models.NeutralChartData {
	return synth.NewSeeded(1).Generate(kind, models.DefaultFilters())
}

func TestEveryBackendMapsEveryKind(t *testing.T) {
	for _, backend := range models.AllBackends {
		adapter, err := For(backend)
		require.NoError(t, err)
		assert.Equal(t, backend, adapter.Backend())

		for _, kind := range models.AllKinds {
			for _, theme := range []models.Theme{{}, {Dark: true}} {
				p := adapter.Map(dataset(kind), theme)
				assert.NotEmpty(t, p, "%s/%s dark=%v", backend, kind, theme.Dark)
				_, err := p.JSON()
				assert.NoError(t, err, "%s/%s", backend, kind)
			}
		}
	}
}

func TestUnknownKindMapsToEmptyPayload(t *testing.T) {
	for _, backend := range models.AllBackends {
		adapter, err := For(backend)
		require.NoError(t, err)
		assert.Empty(t, adapter.Map(models.EmptyData("sparkline"), models.Theme{}))

		mislabeled := dataset(models.KindBar)
		mislabeled.Kind = "sparkline"
		assert.Empty(t, adapter.Map(mislabeled, models.Theme{}))

		empty := models.EmptyData(models.KindBar)
		assert.Empty(t, adapter.Map(empty, models.Theme{}))
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := For("d3")
	assert.True(t, errors.Is(err, models.ErrUnknownValue))
	assert.Empty(t, Map("d3", dataset(models.KindBar), models.Theme{}))
}

func TestNativeSupport(t *testing.T) {
	echartsAdapter, _ := For(models.BackendECharts)
	chartjsAdapter, _ := For(models.BackendChartJS)
	highchartsAdapter, _ := For(models.BackendHighcharts)

	for _, kind := range models.AllKinds {
		assert.True(t, echartsAdapter.Native(kind), "echarts %s", kind)
		assert.True(t, highchartsAdapter.Native(kind), "highcharts %s", kind)
	}
	for _, kind := range []models.ChartKind{models.KindBar, models.KindPie, models.KindLine, models.KindScatter, models.KindRadar} {
		assert.True(t, chartjsAdapter.Native(kind), "chartjs %s", kind)
	}
	for _, kind := range []models.ChartKind{models.KindHeatmap, models.KindGauge, models.KindFunnel, models.KindTreemap, models.KindSunburst, models.KindCandlestick, models.KindBoxplot} {
		assert.False(t, chartjsAdapter.Native(kind), "chartjs %s", kind)
	}
	assert.False(t, echartsAdapter.Native("sparkline"))
}

func TestEChartsBar(t *testing.T) {
	p := decode(t, Map(models.BackendECharts, dataset(models.KindBar), models.Theme{}))

	series := list(t, p["series"])
	require.Len(t, series, 3)
	first := obj(t, series[0])
	assert.Equal(t, "Product A", first["name"])
	assert.Equal(t, "bar", first["type"])
	assert.Equal(t, "#5470c6", obj(t, first["itemStyle"])["color"])

	values := make([]float64, 0, 6)
	for _, item := range list(t, first["data"]) {
		values = append(values, obj(t, item)["value"].(float64))
	}
	assert.Equal(t, []float64{137, 215, 151, 85, 79, 98}, values)

	xAxis := obj(t, list(t, p["xAxis"])[0])
	assert.Equal(t, []interface{}{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, xAxis["data"])
	assert.Equal(t, "#333", obj(t, xAxis["axisLabel"])["color"])
	assert.Equal(t, "axis", obj(t, p["tooltip"])["trigger"])
}

func TestEChartsDarkTheme(t *testing.T) {
	p := decode(t, Map(models.BackendECharts, dataset(models.KindBar), models.Theme{Dark: true}))

	xAxis := obj(t, list(t, p["xAxis"])[0])
	assert.Equal(t, "#e0e0e0", obj(t, xAxis["axisLabel"])["color"])
	yAxis := obj(t, list(t, p["yAxis"])[0])
	assert.Equal(t, "#404040", obj(t, obj(t, yAxis["splitLine"])["lineStyle"])["color"])
}

func TestEChartsLineAreas(t *testing.T) {
	p := decode(t, Map(models.BackendECharts, dataset(models.KindLine), models.Theme{}))

	assert.Equal(t, false, obj(t, list(t, p["xAxis"])[0])["boundaryGap"])
	series := list(t, p["series"])
	require.Len(t, series, 3)
	assert.Contains(t, obj(t, series[0]), "areaStyle")
	assert.Contains(t, obj(t, series[1]), "areaStyle")
	assert.NotContains(t, obj(t, series[2]), "areaStyle")
	assert.Equal(t, true, obj(t, series[0])["smooth"])
}

func TestEChartsRadarAndGauge(t *testing.T) {
	radar := decode(t, Map(models.BackendECharts, dataset(models.KindRadar), models.Theme{Dark: true}))
	component := obj(t, radar["radar"])
	assert.Len(t, list(t, component["indicator"]), 6)
	areaColors := obj(t, obj(t, component["splitArea"])["areaStyle"])["color"]
	assert.Equal(t, []interface{}{"rgba(64, 64, 64, 0.2)", "rgba(64, 64, 64, 0.4)"}, areaColors)
	assert.Len(t, list(t, radar["series"]), 4)

	gauge := decode(t, Map(models.BackendECharts, dataset(models.KindGauge), models.Theme{}))
	series := obj(t, list(t, gauge["series"])[0])
	stops := list(t, obj(t, obj(t, series["axisLine"])["lineStyle"])["color"])
	require.Len(t, stops, 3)
	assert.Equal(t, []interface{}{0.3, "#ee6666"}, stops[0])
	assert.Equal(t, "{value}%", obj(t, series["detail"])["formatter"])
}

func TestEChartsFunnelColors(t *testing.T) {
	p := decode(t, Map(models.BackendECharts, dataset(models.KindFunnel), models.Theme{}))
	series := obj(t, list(t, p["series"])[0])
	assert.Equal(t, "descending", series["sort"])
	items := list(t, series["data"])
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, models.PaletteColor(i), obj(t, obj(t, item)["itemStyle"])["color"])
	}
	assert.Equal(t, 114.0, obj(t, items[0])["value"])
}

func TestEChartsTreemapColors(t *testing.T) {
	p := decode(t, Map(models.BackendECharts, dataset(models.KindTreemap), models.Theme{}))
	nodes := list(t, obj(t, list(t, p["series"])[0])["data"])
	require.Len(t, nodes, 4)
	tech := obj(t, nodes[0])
	assert.Equal(t, "Technology", tech["name"])
	assert.Equal(t, "#5470c6", obj(t, tech["itemStyle"])["color"])
	assert.Len(t, list(t, tech["children"]), 3)
}

func TestEChartsCandlestickOrder(t *testing.T) {
	data := dataset(models.KindCandlestick)
	p := decode(t, Map(models.BackendECharts, data, models.Theme{}))
	items := list(t, obj(t, list(t, p["series"])[0])["data"])
	require.Len(t, items, 30)
	first := data.Series[0].Candles[0]
	assert.Equal(t, []interface{}{first.Open, first.Close, first.Low, first.High}, obj(t, items[0])["value"])
}

func TestHighchartsCandlestickOrder(t *testing.T) {
	data := dataset(models.KindCandlestick)
	p := decode(t, Map(models.BackendHighcharts, data, models.Theme{}))
	series := obj(t, list(t, p["series"])[0])
	assert.Equal(t, "candlestick", series["type"])
	points := list(t, series["data"])
	require.Len(t, points, 30)
	first := data.Series[0].Candles[0]
	assert.Equal(t, []interface{}{first.Open, first.High, first.Low, first.Close}, points[0])
}

func TestHighchartsTreeFlattening(t *testing.T) {
	p := decode(t, Map(models.BackendHighcharts, dataset(models.KindTreemap), models.Theme{}))
	points := list(t, obj(t, list(t, p["series"])[0])["data"])
	// 4 roots + 3 + 2 + 2 children
	require.Len(t, points, 11)

	root := obj(t, points[0])
	assert.Equal(t, "0", root["id"])
	assert.NotContains(t, root, "parent")
	assert.NotContains(t, root, "value")
	assert.Equal(t, "#5470c6", root["color"])

	child := obj(t, points[1])
	assert.Equal(t, "0.0", child["id"])
	assert.Equal(t, "0", child["parent"])
	assert.Equal(t, "Software", child["name"])
	assert.Equal(t, 15.0, child["value"])

	sun := decode(t, Map(models.BackendHighcharts, dataset(models.KindSunburst), models.Theme{}))
	sunPoints := list(t, obj(t, list(t, sun["series"])[0])["data"])
	assert.Equal(t, "root", obj(t, sunPoints[0])["id"])
	assert.Equal(t, "root", obj(t, sunPoints[1])["parent"])
}

func TestHighchartsGaugeBands(t *testing.T) {
	p := decode(t, Map(models.BackendHighcharts, dataset(models.KindGauge), models.Theme{}))
	bands := list(t, obj(t, p["yAxis"])["plotBands"])
	require.Len(t, bands, 3)
	assert.Equal(t, 0.0, obj(t, bands[0])["from"])
	assert.Equal(t, 30.0, obj(t, bands[0])["to"])
	assert.Equal(t, 100.0, obj(t, bands[2])["to"])
	assert.Equal(t, "#91cc75", obj(t, bands[2])["color"])
}

func TestHighchartsRadarIsPolar(t *testing.T) {
	p := decode(t, Map(models.BackendHighcharts, dataset(models.KindRadar), models.Theme{}))
	assert.Equal(t, true, obj(t, p["chart"])["polar"])
	assert.Len(t, list(t, obj(t, p["xAxis"])["categories"]), 6)
}

func TestChartJSHeatmapFallback(t *testing.T) {
	data := dataset(models.KindHeatmap)
	p := decode(t, Map(models.BackendChartJS, data, models.Theme{}))

	assert.Equal(t, "bar", p["type"])
	body := obj(t, p["data"])
	labels := list(t, body["labels"])
	require.Len(t, labels, 24)
	assert.Equal(t, "12a", labels[0])

	var want, got float64
	for _, c := range data.Series[0].Cells {
		want += c.Value
	}
	for _, v := range list(t, obj(t, list(t, body["datasets"])[0])["data"]) {
		got += v.(float64)
	}
	assert.Equal(t, want, got)
}

func TestChartJSFallbackShapes(t *testing.T) {
	tests := []struct {
		kind      models.ChartKind
		chartType string
		labels    int
	}{
		{models.KindGauge, "doughnut", 2},
		{models.KindFunnel, "bar", 5},
		{models.KindTreemap, "doughnut", 4},
		{models.KindSunburst, "doughnut", 2},
		{models.KindCandlestick, "bar", 30},
		{models.KindBoxplot, "bar", 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p := decode(t, Map(models.BackendChartJS, dataset(tt.kind), models.Theme{}))
			assert.Equal(t, tt.chartType, p["type"])
			assert.Len(t, list(t, obj(t, p["data"])["labels"]), tt.labels)
		})
	}

	funnel := decode(t, Map(models.BackendChartJS, dataset(models.KindFunnel), models.Theme{}))
	assert.Equal(t, "y", obj(t, funnel["options"])["indexAxis"])

	sun := decode(t, Map(models.BackendChartJS, dataset(models.KindSunburst), models.Theme{}))
	values := list(t, obj(t, list(t, obj(t, sun["data"])["datasets"])[0])["data"])
	assert.Equal(t, []interface{}{25.0, 15.0}, values)

	box := decode(t, Map(models.BackendChartJS, dataset(models.KindBoxplot), models.Theme{}))
	datasets := list(t, obj(t, box["data"])["datasets"])
	require.Len(t, datasets, 2)
	assert.Equal(t, []interface{}{850.0, 980.0}, list(t, obj(t, datasets[0])["data"])[0])
	assert.Equal(t, 950.0, list(t, obj(t, datasets[1])["data"])[0])
}

func TestChartJSThemeColors(t *testing.T) {
	p := decode(t, Map(models.BackendChartJS, dataset(models.KindBar), models.Theme{Dark: true}))
	options := obj(t, p["options"])
	legend := obj(t, obj(t, options["plugins"])["legend"])
	assert.Equal(t, "#e0e0e0", obj(t, legend["labels"])["color"])
	x := obj(t, obj(t, options["scales"])["x"])
	assert.Equal(t, "#404040", obj(t, x["grid"])["color"])
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, "rgba(84, 112, 198, 0.5)", rgba("#5470c6", 0.5))
	assert.Equal(t, "red", rgba("red", 0.5))
	assert.Equal(t, "#zzzzzz", rgba("#zzzzzz", 1))
}
