package models

// NeutralChartData is the backend-agnostic dataset produced by the synthesizer.
// Which Series field is populated is fixed by Kind:
//
//	bar, line, pie, funnel, radar, gauge  -> Values
//	scatter                               -> Points
//	heatmap                               -> Cells
//	candlestick                           -> Candles
//	boxplot                               -> Boxes
//	treemap, sunburst                     -> Nodes
type NeutralChartData struct {
	Kind       ChartKind   `json:"kind"`
	Title      string      `json:"title"`
	SeriesName string      `json:"seriesName,omitempty"` // name for single-series kinds (pie, funnel, gauge)
	Categories []string    `json:"categories,omitempty"` // x axis, slice names or radar indicator names
	Rows       []string    `json:"rows,omitempty"`       // heatmap y axis
	Indicators []Indicator `json:"indicators,omitempty"` // radar axes
	Series     []Series    `json:"series"`
}

// Series is one named sequence of values
type Series struct {
	Name    string       `json:"name"`
	Color   string       `json:"color,omitempty"`
	Fill    bool         `json:"fill,omitempty"` // shade the area under a line
	Values  []float64    `json:"values,omitempty"`
	Points  []Point      `json:"points,omitempty"`
	Cells   []HeatCell   `json:"cells,omitempty"`
	Candles []OHLC       `json:"candles,omitempty"`
	Boxes   []BoxSummary `json:"boxes,omitempty"`
	Nodes   []TreeNode   `json:"nodes,omitempty"`
}

// Point is an x/y pair
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HeatCell is one heatmap cell addressed by column and row index
type HeatCell struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Value float64 `json:"value"`
}

// OHLC is one candlestick bar
type OHLC struct {
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
}

// Rising reports whether the bar closed at or above its open
func (o OHLC) Rising() bool {
	return o.Close >= o.Open
}

// BoxSummary is a five-number summary
type BoxSummary struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Values returns the summary as [min, q1, median, q3, max]
func (b BoxSummary) Values() []float64 {
	return []float64{b.Min, b.Q1, b.Median, b.Q3, b.Max}
}

// TreeNode is a node of a hierarchical dataset. A zero Value means the node
// is sized by its children.
type TreeNode struct {
	Name     string     `json:"name"`
	Value    float64    `json:"value,omitempty"`
	Color    string     `json:"color,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// Total returns Value when set, otherwise the sum of the children totals
func (n TreeNode) Total() float64 {
	if n.Value != 0 || len(n.Children) == 0 {
		return n.Value
	}
	var sum float64
	for _, c := range n.Children {
		sum += c.Total()
	}
	return sum
}

// Indicator is one radar axis
type Indicator struct {
	Name string  `json:"name"`
	Max  float64 `json:"max"`
}

// EmptyData returns the neutral dataset used for unknown kinds
func EmptyData(kind ChartKind) NeutralChartData {
	return NeutralChartData{Kind: kind, Title: kind.Title()}
}

// IsEmpty reports whether the dataset carries no series
func (d NeutralChartData) IsEmpty() bool {
	return len(d.Series) == 0
}
