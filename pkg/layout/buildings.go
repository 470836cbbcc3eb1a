package layout

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/random"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// SpacingJitter scales MinSpacing to the upper bound of the gap drawn
// after each building along a row.
const SpacingJitter = 1.5

// Rule produced by PlaceBuildings when nothing fits the grid.
const RuleExhaustedGrid validation.Rule = "exhausted_grid"

// Building is a placed box on the ground plane. X and Z locate the
// footprint's minimum corner; Y is half the height so the volume sits on
// the ground.
type Building struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Footprint returns the half-open rectangle the building occupies.
func (b Building) Footprint() geo.Rect {
	return geo.NewRect(b.X, b.Z, b.Width, b.Depth)
}

// InvariantViolation is the panic value raised when the generator is
// handed a spec that could never have passed validation.
type InvariantViolation struct {
	Reason string
}

func (v InvariantViolation) Error() string {
	return "layout: invariant violation: " + v.Reason
}

// Buildings raster-scans the grid row by row (along Z), filling each row
// with buildings along X, and yields every placed building in order.
//
// Rows and buildings stop as soon as the configured minimum no longer
// fits; leftover strips narrower than the minimum stay empty. When the
// remaining space is below the configured maximum, the dimension is
// clamped to exactly the remaining space. A randomized gap in
// [MinSpacing, 1.5*MinSpacing] follows each building along X; rows are
// packed without a gap.
//
// Ranging over the result again re-runs the scan with the source's next
// draws. s must have passed validation.Validate; Buildings panics with an
// InvariantViolation on a spec that cannot terminate.
func Buildings(s spec.CitySpec, rng random.Source) iter.Seq[Building] {
	mustBeGenerable(s)

	return func(yield func(Building) bool) {
		id := 0
		for z := 0.0; z+s.BldgDepth.Min <= s.Grid.Depth; {
			depth := fitDimension(s.BldgDepth, s.Grid.Depth-z, rng)

			for x := 0.0; x+s.BldgWidth.Min <= s.Grid.Width; {
				width := fitDimension(s.BldgWidth, s.Grid.Width-x, rng)
				height := rng.Uniform(s.BldgHeight.Min, s.BldgHeight.Max)
				space := rng.Uniform(s.MinSpacing, s.MinSpacing*SpacingJitter)

				id++
				b := Building{
					ID:     id,
					X:      x,
					Y:      height / 2,
					Z:      z,
					Width:  width,
					Depth:  depth,
					Height: height,
				}
				if !yield(b) {
					return
				}
				x += width + space
			}
			z += depth
		}
	}
}

// Generate runs Buildings to completion and returns the placed buildings.
func Generate(s spec.CitySpec, rng random.Source) []Building {
	return slices.Collect(Buildings(s, rng))
}

// PlaceBuildings generates a layout and reports how much of the grid it
// covers. An empty layout is a warning, not an error.
func PlaceBuildings(s spec.CitySpec, rng random.Source) ([]Building, *validation.Report) {
	report := validation.NewReport()
	buildings := Generate(s, rng)

	if len(buildings) == 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Rule:        RuleExhaustedGrid,
			Message:     "no building fits the grid",
			SpecPath:    "grid",
			ActualValue: s.Grid,
			Suggestions: []string{"Enlarge the grid or lower the minimum building size"},
		})
		return buildings, report
	}

	st := Summarize(s, buildings)
	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("placed %d buildings in %d rows covering %.1f%% of the grid", st.Count, st.Rows, st.Coverage*100),
	})
	return buildings, report
}

// fitDimension picks a building dimension for the space left on an axis.
func fitDimension(r spec.Range, remaining float64, rng random.Source) float64 {
	if remaining < r.Max {
		return remaining
	}
	return rng.Uniform(r.Min, r.Max)
}

func mustBeGenerable(s spec.CitySpec) {
	check := func(ok bool, format string, args ...any) {
		if !ok {
			panic(InvariantViolation{Reason: fmt.Sprintf(format, args...)})
		}
	}

	check(s.Grid.Width > 0 && s.Grid.Depth > 0 && !math.IsInf(s.Grid.Width, 0) && !math.IsInf(s.Grid.Depth, 0),
		"grid must be finite and positive, got %gx%g", s.Grid.Width, s.Grid.Depth)
	for _, r := range []struct {
		name string
		rg   spec.Range
	}{
		{"building_width", s.BldgWidth},
		{"building_depth", s.BldgDepth},
		{"building_height", s.BldgHeight},
	} {
		check(r.rg.Min > 0 && r.rg.Min <= r.rg.Max && !math.IsInf(r.rg.Max, 0),
			"%s must satisfy 0 < min <= max < Inf, got %+v", r.name, r.rg)
	}
	check(s.MinSpacing >= 0 && !math.IsInf(s.MinSpacing, 0), "min_spacing must be finite and non-negative, got %g", s.MinSpacing)
}
