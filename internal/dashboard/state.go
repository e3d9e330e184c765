package dashboard

import (
	"fmt"

	"chartdeck/internal/models"
)

// WidgetState is the cache state of one chart widget under the current
// filters and backend. There is no stale state: a clear sends every widget
// straight back to Uncached.
type WidgetState int

const (
	Uncached WidgetState = iota
	Computing
	Cached
)

func (s WidgetState) String() string {
	switch s {
	case Uncached:
		return "uncached"
	case Computing:
		return "computing"
	case Cached:
		return "cached"
	default:
		return fmt.Sprintf("WidgetState(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON responses
func (s WidgetState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name as produced by MarshalText
func (s *WidgetState) UnmarshalText(text []byte) error {
	for _, st := range []WidgetState{Uncached, Computing, Cached} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("widget state %q: %w", text, models.ErrUnknownValue)
}

// StateObserver is notified of every widget transition. It runs with the
// dashboard lock held and must not call back into the dashboard.
type StateObserver func(kind models.ChartKind, from, to WidgetState)
