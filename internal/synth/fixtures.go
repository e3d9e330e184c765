package synth

import "chartdeck/internal/models"

// scalarSeries is a named row of specs with its display color
type scalarSeries struct {
	name  string
	color string
	fill  bool
	specs []SeriesSpec
}

func row(variance float64, firstSeed int, bases ...float64) []SeriesSpec {
	specs := make([]SeriesSpec, len(bases))
	for i, b := range bases {
		specs[i] = SeriesSpec{Seed: firstSeed + i, BaseValue: b, Variance: variance}
	}
	return specs
}

var (
	barCategories = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	barSeries     = []scalarSeries{
		{name: "Product A", color: "#5470c6", specs: row(0.3, 1, 120, 200, 150, 80, 70, 110)},
		{name: "Product B", color: "#91cc75", specs: row(0.3, 7, 95, 170, 120, 60, 90, 80)},
		{name: "Product C", color: "#fac858", specs: row(0.3, 13, 65, 85, 90, 40, 60, 70)},
	}

	lineCategories = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	lineSeries     = []scalarSeries{
		{name: "Revenue", color: "#5470c6", fill: true, specs: row(0.3, 24, 820, 932, 901, 934, 1290, 1330, 1320)},
		{name: "Costs", color: "#ee6666", fill: true, specs: row(0.2, 31, 320, 432, 401, 434, 590, 530, 520)},
		{name: "Profit", color: "#91cc75", specs: row(0.4, 38, 500, 500, 500, 500, 700, 800, 800)},
	}

	pieCategories = []string{"Search Engine", "Direct", "Email", "Union Ads", "Video Ads"}
	pieSpecs      = row(0.3, 19, 1048, 735, 580, 484, 300)

	funnelCategories = []string{"Visit", "Inquiry", "Order", "Click", "Purchase"}
	funnelSpecs      = row(0.3, 45, 100, 80, 60, 40, 20)
)

var (
	radarIndicators = []models.Indicator{
		{Name: "Sales", Max: 6500},
		{Name: "Marketing", Max: 16000},
		{Name: "Development", Max: 30000},
		{Name: "Support", Max: 38000},
		{Name: "Tech", Max: 52000},
		{Name: "Admin", Max: 25000},
	}
	radarSeries = []models.Series{
		{Name: "Q1 Budget", Color: "#5470c6", Values: []float64{4200, 3000, 20000, 35000, 50000, 18000}},
		{Name: "Q1 Actual", Color: "#91cc75", Values: []float64{5000, 14000, 28000, 26000, 42000, 21000}},
		{Name: "Q2 Budget", Color: "#fac858", Values: []float64{4500, 8000, 25000, 37000, 48000, 20000}},
		{Name: "Q2 Actual", Color: "#ee6666", Values: []float64{4800, 10000, 27000, 35000, 45000, 22000}},
	}
)

// HeatmapHours and HeatmapDays label the heatmap axes
var (
	HeatmapHours = []string{"12a", "1a", "2a", "3a", "4a", "5a", "6a",
		"7a", "8a", "9a", "10a", "11a",
		"12p", "1p", "2p", "3p", "4p", "5p",
		"6p", "7p", "8p", "9p", "10p", "11p"}
	HeatmapDays = []string{"Saturday", "Friday", "Thursday",
		"Wednesday", "Tuesday", "Monday", "Sunday"}
)

var scatterGroups = []struct {
	name         string
	color        string
	xSpan, xBase float64
	ySpan, yBase float64
}{
	{name: "Category A", color: "#5470c6", xSpan: 80, xBase: 10, ySpan: 60, yBase: 20},
	{name: "Category B", color: "#91cc75", xSpan: 70, xBase: 20, ySpan: 70, yBase: 10},
	{name: "Category C", color: "#fac858", xSpan: 60, xBase: 30, ySpan: 80, yBase: 5},
}

const (
	scatterPoints   = 50
	heatmapMax      = 50
	candleDays      = 30
	candleBasePrice = 2500
)

var (
	boxplotTeams   = []string{"Team A", "Team B", "Team C", "Team D", "Team E"}
	boxplotSamples = [][]float64{
		{850, 740, 900, 1070, 930, 850, 950, 980, 980, 880, 1000, 980, 930, 650, 760, 810, 1000, 1000, 960, 960},
		{960, 940, 960, 940, 880, 800, 850, 880, 900, 840, 830, 790, 810, 880, 880, 830, 800, 790, 760, 800},
		{880, 880, 880, 860, 720, 720, 620, 860, 970, 950, 880, 910, 850, 870, 840, 840, 850, 840, 840, 840},
		{890, 810, 810, 820, 800, 770, 760, 740, 750, 760, 910, 920, 890, 860, 880, 720, 840, 850, 850, 780},
		{890, 840, 780, 810, 760, 810, 790, 810, 820, 850, 870, 870, 810, 740, 810, 940, 950, 800, 810, 870},
	}
)

var treemapNodes = []models.TreeNode{
	{Name: "Technology", Value: 40, Color: "#5470c6", Children: []models.TreeNode{
		{Name: "Software", Value: 15},
		{Name: "Hardware", Value: 12},
		{Name: "Services", Value: 13},
	}},
	{Name: "Finance", Value: 30, Color: "#91cc75", Children: []models.TreeNode{
		{Name: "Banking", Value: 18},
		{Name: "Insurance", Value: 12},
	}},
	{Name: "Healthcare", Value: 20, Color: "#fac858", Children: []models.TreeNode{
		{Name: "Pharma", Value: 12},
		{Name: "Medical Devices", Value: 8},
	}},
	{Name: "Retail", Value: 10, Color: "#ee6666"},
}

var sunburstNodes = []models.TreeNode{
	{Name: "Products", Color: "#5470c6", Children: []models.TreeNode{
		{Name: "Electronics", Value: 15, Children: []models.TreeNode{
			{Name: "Phones", Value: 8},
			{Name: "Laptops", Value: 7},
		}},
		{Name: "Clothing", Value: 10, Children: []models.TreeNode{
			{Name: "Mens", Value: 4},
			{Name: "Womens", Value: 6},
		}},
	}},
	{Name: "Services", Color: "#91cc75", Children: []models.TreeNode{
		{Name: "Consulting", Value: 8},
		{Name: "Support", Value: 7},
	}},
}
