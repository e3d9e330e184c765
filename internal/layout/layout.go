package layout

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"chartdeck/internal/models"
)

//go:embed default.yaml
var defaultLayout []byte

// Grid holds the drag-and-resize grid settings handed to the UI
type Grid struct {
	Type             string `yaml:"type" json:"type"`
	Compact          string `yaml:"compact" json:"compact"`
	Margin           int    `yaml:"margin" json:"margin"`
	OuterMargin      bool   `yaml:"outerMargin" json:"outerMargin"`
	MobileBreakpoint int    `yaml:"mobileBreakpoint" json:"mobileBreakpoint"`
	ColWidth         int    `yaml:"colWidth" json:"colWidth"`
	RowHeight        int    `yaml:"rowHeight" json:"rowHeight"`
	Draggable        bool   `yaml:"draggable" json:"draggable"`
	Resizable        bool   `yaml:"resizable" json:"resizable"`
	PushItems        bool   `yaml:"pushItems" json:"pushItems"`
	Swap             bool   `yaml:"swap" json:"swap"`
	DisplayGrid      string `yaml:"displayGrid" json:"displayGrid"`
}

// Widget places one chart on the grid
type Widget struct {
	Kind   models.ChartKind `yaml:"kind" json:"kind"`
	Title  string           `yaml:"title,omitempty" json:"title"`
	X      int              `yaml:"x" json:"x"`
	Y      int              `yaml:"y" json:"y"`
	Cols   int              `yaml:"cols" json:"cols"`
	Rows   int              `yaml:"rows" json:"rows"`
	Hidden bool             `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Layout is the complete dashboard arrangement
type Layout struct {
	Grid    Grid     `yaml:"grid" json:"grid"`
	Widgets []Widget `yaml:"widgets" json:"widgets"`
}

// Default returns the embedded layout
func Default() (*Layout, error) {
	return Parse(defaultLayout)
}

// Parse decodes a YAML layout, fills widget titles from the catalog and
// checks that widgets name known kinds without overlapping
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	for i := range l.Widgets {
		w := &l.Widgets[i]
		if !w.Kind.Valid() {
			return nil, fmt.Errorf("widget %d: chart kind %q: %w", i, w.Kind, models.ErrUnknownValue)
		}
		if w.Cols <= 0 || w.Rows <= 0 {
			return nil, fmt.Errorf("widget %d (%s): size must be positive", i, w.Kind)
		}
		if w.Title == "" {
			w.Title = w.Kind.Title()
		}
	}
	if err := l.checkOverlap(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Visible returns the widgets shown by default
func (l *Layout) Visible() []Widget {
	var out []Widget
	for _, w := range l.Widgets {
		if !w.Hidden {
			out = append(out, w)
		}
	}
	return out
}

func (l *Layout) checkOverlap() error {
	for i := 0; i < len(l.Widgets); i++ {
		for j := i + 1; j < len(l.Widgets); j++ {
			a, b := l.Widgets[i], l.Widgets[j]
			if a.X < b.X+b.Cols && b.X < a.X+a.Cols && a.Y < b.Y+b.Rows && b.Y < a.Y+a.Rows {
				return fmt.Errorf("widgets %s and %s overlap", a.Kind, b.Kind)
			}
		}
	}
	return nil
}
