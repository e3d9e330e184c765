package models

import (
	"errors"
	"fmt"
)

// ErrUnknownValue is returned when a filter, kind or backend string is not part of its enum
var ErrUnknownValue = errors.New("unknown value")

// TimeRange is the reporting period selected in the filter bar
type TimeRange string

const (
	TimeLast7Days  TimeRange = "last7days"
	TimeLast30Days TimeRange = "last30days"
	TimeLast90Days TimeRange = "last90days"
	TimeThisYear   TimeRange = "thisYear"
)

// Category is the product category selected in the filter bar
type Category string

const (
	CategoryAll         Category = "all"
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryServices    Category = "services"
)

// Region is the sales region selected in the filter bar
type Region string

const (
	RegionAll   Region = "all"
	RegionNorth Region = "north"
	RegionSouth Region = "south"
	RegionEast  Region = "east"
	RegionWest  Region = "west"
)

// FilterState is an immutable snapshot of the three active filters
type FilterState struct {
	TimeRange TimeRange `json:"timeRange"`
	Category  Category  `json:"category"`
	Region    Region    `json:"region"`
}

// DefaultFilters returns the filter state the dashboard starts with and resets to
func DefaultFilters() FilterState {
	return FilterState{
		TimeRange: TimeLast30Days,
		Category:  CategoryAll,
		Region:    RegionAll,
	}
}

// String renders the filter state for logs
func (f FilterState) String() string {
	return fmt.Sprintf("%s/%s/%s", f.TimeRange, f.Category, f.Region)
}

// Validate checks that every field holds a known enum value
func (f FilterState) Validate() error {
	if _, err := ParseTimeRange(string(f.TimeRange)); err != nil {
		return err
	}
	if _, err := ParseCategory(string(f.Category)); err != nil {
		return err
	}
	if _, err := ParseRegion(string(f.Region)); err != nil {
		return err
	}
	return nil
}

// Option is a selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TimeRangeOptions lists the time ranges in display order
var TimeRangeOptions = []Option{
	{Value: string(TimeLast7Days), Label: "Last 7 Days"},
	{Value: string(TimeLast30Days), Label: "Last 30 Days"},
	{Value: string(TimeLast90Days), Label: "Last 90 Days"},
	{Value: string(TimeThisYear), Label: "This Year"},
}

// CategoryOptions lists the categories in display order
var CategoryOptions = []Option{
	{Value: string(CategoryAll), Label: "All Categories"},
	{Value: string(CategoryElectronics), Label: "Electronics"},
	{Value: string(CategoryClothing), Label: "Clothing"},
	{Value: string(CategoryFood), Label: "Food & Beverage"},
	{Value: string(CategoryServices), Label: "Services"},
}

// RegionOptions lists the regions in display order
var RegionOptions = []Option{
	{Value: string(RegionAll), Label: "All Regions"},
	{Value: string(RegionNorth), Label: "North"},
	{Value: string(RegionSouth), Label: "South"},
	{Value: string(RegionEast), Label: "East"},
	{Value: string(RegionWest), Label: "West"},
}

// ParseTimeRange converts a raw string into a TimeRange
func ParseTimeRange(s string) (TimeRange, error) {
	if !hasOption(TimeRangeOptions, s) {
		return "", fmt.Errorf("time range %q: %w", s, ErrUnknownValue)
	}
	return TimeRange(s), nil
}

// ParseCategory converts a raw string into a Category
func ParseCategory(s string) (Category, error) {
	if !hasOption(CategoryOptions, s) {
		return "", fmt.Errorf("category %q: %w", s, ErrUnknownValue)
	}
	return Category(s), nil
}

// ParseRegion converts a raw string into a Region
func ParseRegion(s string) (Region, error) {
	if !hasOption(RegionOptions, s) {
		return "", fmt.Errorf("region %q: %w", s, ErrUnknownValue)
	}
	return Region(s), nil
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
