package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"chartdeck/internal/models"
)

// Summary describes the dashboard selection an export was taken under
type Summary struct {
	Filters     models.FilterState
	Backend     models.Backend
	Theme       models.Theme
	GeneratedAt time.Time
	Version     string
}

// Markdown renders the summary as a markdown section
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("# Dashboard Export\n\n")
	fmt.Fprintf(&b, "Generated at %s", s.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	if s.Version != "" {
		fmt.Fprintf(&b, " by chartdeck %s", s.Version)
	}
	b.WriteString(".\n\n")

	b.WriteString("| Setting | Value |\n")
	b.WriteString("|---------|-------|\n")
	fmt.Fprintf(&b, "| Time Range | %s |\n", optionLabel(models.TimeRangeOptions, string(s.Filters.TimeRange)))
	fmt.Fprintf(&b, "| Category | %s |\n", optionLabel(models.CategoryOptions, string(s.Filters.Category)))
	fmt.Fprintf(&b, "| Region | %s |\n", optionLabel(models.RegionOptions, string(s.Filters.Region)))
	fmt.Fprintf(&b, "| Dashboard Backend | %s |\n", s.Backend)
	fmt.Fprintf(&b, "| Theme | %s |\n", themeName(s.Theme))

	b.WriteString("\nCharts below are rendered with ECharts regardless of the dashboard backend.\n")
	return b.String()
}

func optionLabel(options []models.Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func themeName(t models.Theme) string {
	if t.Dark {
		return "dark"
	}
	return "light"
}

// MarkdownRenderer converts markdown to HTML using goldmark
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a renderer with GFM tables enabled
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &MarkdownRenderer{md: md}
}

// ToHTML converts markdown content to an HTML fragment
func (r *MarkdownRenderer) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}
