package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartdeck/internal/models"
)

func TestDefaultLayout(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "verticalFixed", l.Grid.Type)
	assert.Equal(t, 105, l.Grid.ColWidth)
	assert.True(t, l.Grid.Draggable)
	assert.True(t, l.Grid.Resizable)

	require.Len(t, l.Widgets, len(models.AllKinds))
	for i, w := range l.Widgets {
		assert.Equal(t, models.AllKinds[i], w.Kind)
		assert.Equal(t, w.Kind.Title(), w.Title)
		assert.Equal(t, 2, w.Cols)
		assert.Equal(t, 3, w.Rows)
	}

	visible := l.Visible()
	require.Len(t, visible, 5)
	assert.Equal(t, models.KindHeatmap, visible[4].Kind)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "widgets: [:"},
		{"unknown kind", "widgets:\n  - {kind: sparkline, x: 0, y: 0, cols: 1, rows: 1}"},
		{"zero size", "widgets:\n  - {kind: bar, x: 0, y: 0, cols: 0, rows: 1}"},
		{"overlap", "widgets:\n  - {kind: bar, x: 0, y: 0, cols: 2, rows: 2}\n  - {kind: pie, x: 1, y: 1, cols: 2, rows: 2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("widgets:\n  - {kind: sparkline, x: 0, y: 0, cols: 1, rows: 1}"))
	assert.True(t, errors.Is(err, models.ErrUnknownValue))
}

func TestParseKeepsCustomTitle(t *testing.T) {
	l, err := Parse([]byte("widgets:\n  - {kind: gauge, title: Uptime, x: 0, y: 0, cols: 1, rows: 1}\n  - {kind: pie, x: 1, y: 0, cols: 1, rows: 1}"))
	require.NoError(t, err)
	assert.Equal(t, "Uptime", l.Widgets[0].Title)
	assert.Equal(t, "Market Share", l.Widgets[1].Title)
}
