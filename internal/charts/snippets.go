package charts

import (
	"fmt"
	"html"

	"chartdeck/internal/models"
)

// EChartsCDN is the script the snippets expect to be loaded once per page
const EChartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div should contain a single root <div id="..." style="..."></div>
// Script should contain the <script>...</script> block that initializes the chart in that div.
// HTML contains the complete snippet with div + script combined for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// SnippetID returns the DOM id used for a chart kind
func SnippetID(kind models.ChartKind) string {
	return "chart-" + string(kind)
}

// NewSnippet wraps an ECharts payload into a self-initializing HTML fragment
func NewSnippet(kind models.ChartKind, title string, p Payload) (ChartSnippet, error) {
	id := SnippetID(kind)

	optJSON, err := p.JSON()
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to encode %s options: %w", kind, err)
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:360px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, html.EscapeString(title), div, script)

	return ChartSnippet{ID: id, Title: title, Div: div, Script: script, HTML: completeHTML}, nil
}
