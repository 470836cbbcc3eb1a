package validation

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// MinDimension is the smallest building dimension accepted, in meters.
const MinDimension = 1.0

// Rules produced by Validate.
const (
	RuleGridDimension       Rule = "grid_dimension"
	RuleRangeMin            Rule = "range_min"
	RuleRangeOrder          Rule = "range_order"
	RuleWidthExceedsGrid    Rule = "width_exceeds_grid"
	RuleWidthSpacingExceeds Rule = "width_spacing_exceeds_grid"
	RuleDepthExceedsGrid    Rule = "depth_exceeds_grid"
	RuleDepthSpacingExceeds Rule = "depth_spacing_exceeds_grid"
	RuleNegativeSpacing     Rule = "negative_spacing"
	RuleNonFinite           Rule = "non_finite"
)

// Validate checks a CitySpec for internal consistency and for whether at
// least one building plus its gap fits the grid. Every check runs; the
// report lists each failure in check order. s is taken by value and is
// never modified. NaN and infinite values are always rejected.
func Validate(s spec.CitySpec) *Report {
	r := NewReport()

	validateGrid(s.Grid, r)
	validateRange("building_width", s.BldgWidth, r)
	validateRange("building_depth", s.BldgDepth, r)
	validateRange("building_height", s.BldgHeight, r)
	validateFit(s, r)
	validateSpacing(s.MinSpacing, r)

	return r
}

func validateGrid(g spec.GridSpec, r *Report) {
	dims := []struct {
		name  string
		value float64
	}{
		{"width", g.Width},
		{"depth", g.Depth},
	}
	for _, d := range dims {
		if !(d.value > 0) || math.IsInf(d.value, 0) {
			r.AddError(Result{
				Level:       LevelSchema,
				Rule:        RuleGridDimension,
				Message:     fmt.Sprintf("grid %s must be a finite number greater than 0", d.name),
				SpecPath:    "grid." + d.name,
				ActualValue: jsonValue(d.value),
				Expected:    "> 0",
			})
		}
	}
}

func validateRange(name string, rg spec.Range, r *Report) {
	if !isFinite(rg.Min) || !isFinite(rg.Max) {
		r.AddError(nonFinite(name, rg))
		return
	}
	if rg.Min < MinDimension || rg.Max < MinDimension {
		r.AddError(Result{
			Level:       LevelSchema,
			Rule:        RuleRangeMin,
			Message:     fmt.Sprintf("%s values must be at least %.1f", name, MinDimension),
			SpecPath:    name,
			ActualValue: rg,
			Expected:    fmt.Sprintf(">= %.1f", MinDimension),
		})
	}
	if rg.Min > rg.Max {
		r.AddError(Result{
			Level:       LevelSchema,
			Rule:        RuleRangeOrder,
			Message:     fmt.Sprintf("%s min must be less than or equal to max", name),
			SpecPath:    name,
			ActualValue: rg,
			Expected:    "min <= max",
			Suggestions: []string{fmt.Sprintf("Swap %s.min and %s.max", name, name)},
		})
	}
}

func validateFit(s spec.CitySpec, r *Report) {
	axes := []struct {
		name        string
		bldg        spec.Range
		grid        float64
		exceeds     Rule
		withSpacing Rule
	}{
		{"width", s.BldgWidth, s.Grid.Width, RuleWidthExceedsGrid, RuleWidthSpacingExceeds},
		{"depth", s.BldgDepth, s.Grid.Depth, RuleDepthExceedsGrid, RuleDepthSpacingExceeds},
	}

	for _, a := range axes {
		// Non-finite inputs are already reported and make the sums meaningless.
		if !isFinite(a.bldg.Min) || !isFinite(a.grid) || !isFinite(s.MinSpacing) {
			continue
		}
		if a.bldg.Min > a.grid {
			r.AddError(Result{
				Level:       LevelFeasibility,
				Rule:        a.exceeds,
				Message:     fmt.Sprintf("minimum building %s must not exceed grid %s", a.name, a.name),
				SpecPath:    "building_" + a.name + ".min",
				ActualValue: a.bldg.Min,
				Expected:    fmt.Sprintf("<= grid.%s (%g)", a.name, a.grid),
			})
		}
		if a.bldg.Min+s.MinSpacing > a.grid {
			r.AddError(Result{
				Level:       LevelFeasibility,
				Rule:        a.withSpacing,
				Message:     fmt.Sprintf("minimum building %s plus spacing must not exceed grid %s", a.name, a.name),
				SpecPath:    "building_" + a.name + ".min",
				ActualValue: a.bldg.Min + s.MinSpacing,
				Expected:    fmt.Sprintf("<= grid.%s (%g)", a.name, a.grid),
				Suggestions: []string{"Reduce min_spacing or the minimum building " + a.name},
			})
		}
	}
}

func validateSpacing(spacing float64, r *Report) {
	if !isFinite(spacing) {
		r.AddError(nonFinite("min_spacing", spacing))
		return
	}
	if spacing < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Rule:        RuleNegativeSpacing,
			Message:     "min_spacing must be non-negative",
			SpecPath:    "min_spacing",
			ActualValue: spacing,
			Expected:    ">= 0",
		})
	}
}

// jsonValue returns v, or its string form when encoding/json cannot
// represent it.
func jsonValue(v float64) any {
	if !isFinite(v) {
		return fmt.Sprint(v)
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonFinite reports a NaN or infinite field. The value is stringified
// for the same reason as jsonValue.
func nonFinite(path string, value any) Result {
	return Result{
		Level:       LevelSchema,
		Rule:        RuleNonFinite,
		Message:     fmt.Sprintf("%s must be a finite number", path),
		SpecPath:    path,
		ActualValue: fmt.Sprintf("%+v", value),
		Expected:    "finite value",
	}
}
