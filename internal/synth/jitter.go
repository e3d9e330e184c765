package synth

import (
	"math"
	"strconv"

	"chartdeck/internal/models"
)

// SeriesSpec describes one synthesized scalar value
type SeriesSpec struct {
	Seed      int
	BaseValue float64
	Variance  float64
}

var timeMultipliers = map[models.TimeRange]float64{
	models.TimeLast7Days:  0.7,
	models.TimeLast30Days: 1.0,
	models.TimeLast90Days: 1.3,
	models.TimeThisYear:   1.5,
}

var categoryMultipliers = map[models.Category]float64{
	models.CategoryElectronics: 1.2,
	models.CategoryClothing:    0.9,
	models.CategoryFood:        0.8,
	models.CategoryServices:    1.1,
	models.CategoryAll:         1.0,
}

var regionMultipliers = map[models.Region]float64{
	models.RegionNorth: 1.1,
	models.RegionSouth: 0.95,
	models.RegionEast:  1.15,
	models.RegionWest:  1.05,
	models.RegionAll:   1.0,
}

// TimeMultiplier returns the scale factor for a time range, 1 when unknown
func TimeMultiplier(t models.TimeRange) float64 {
	return lookup(timeMultipliers, t)
}

// CategoryMultiplier returns the scale factor for a category, 1 when unknown
func CategoryMultiplier(c models.Category) float64 {
	return lookup(categoryMultipliers, c)
}

// RegionMultiplier returns the scale factor for a region, 1 when unknown
func RegionMultiplier(r models.Region) float64 {
	return lookup(regionMultipliers, r)
}

func lookup[K comparable](table map[K]float64, key K) float64 {
	if m, ok := table[key]; ok {
		return m
	}
	return 1.0
}

// Hash is the 32-bit rolling hash hash = hash*31 + c, wrapped to int32,
// returned as its absolute value. The absolute value is taken in 64 bits so
// math.MinInt32 maps to 2147483648.
func Hash(s string) int64 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h*31 + int32(s[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// hashInput joins the seed and the filter values in a fixed order
func hashInput(seed int, f models.FilterState) string {
	return strconv.Itoa(seed) + "-" + string(f.TimeRange) + "-" + string(f.Category) + "-" + string(f.Region)
}

// Jitter returns the deterministic perturbation in [-variance/2, variance/2)
func Jitter(seed int, f models.FilterState, variance float64) float64 {
	h := Hash(hashInput(seed, f))
	return (float64(h%1000)/1000 - 0.5) * variance
}

// Value computes round(base * time * category * region * (1 + jitter))
func Value(spec SeriesSpec, f models.FilterState) float64 {
	multiplier := TimeMultiplier(f.TimeRange)
	multiplier *= CategoryMultiplier(f.Category)
	multiplier *= RegionMultiplier(f.Region)

	value := spec.BaseValue * multiplier
	return math.Round(value * (1 + Jitter(spec.Seed, f, spec.Variance)))
}

// Values evaluates a row of specs against one filter state
func Values(specs []SeriesSpec, f models.FilterState) []float64 {
	out := make([]float64, len(specs))
	for i, spec := range specs {
		out[i] = Value(spec, f)
	}
	return out
}
