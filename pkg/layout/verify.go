package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// Rules produced by Verify.
const (
	RuleSequence  validation.Rule = "id_sequence"
	RuleGroundedY validation.Rule = "grounded_y"
	RuleOutOfGrid validation.Rule = "out_of_grid"
	RuleDimension validation.Rule = "dimension_range"
	RuleOverlap   validation.Rule = "footprint_overlap"
)

// Verify audits a generated layout against the placement invariants:
// sequential ids from 1, Y at half height, footprints inside the grid,
// dimensions within their ranges (or clamped flush to the grid edge) and
// no two footprints sharing area.
func Verify(s spec.CitySpec, buildings []Building) *validation.Report {
	r := validation.NewReport()

	verifySequence(buildings, r)
	verifyPlacement(s, buildings, r)
	verifyDimensions(s, buildings, r)
	verifyOverlap(buildings, r)

	return r
}

func verifySequence(buildings []Building, r *validation.Report) {
	for i, b := range buildings {
		if b.ID != i+1 {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Rule:        RuleSequence,
				Message:     fmt.Sprintf("building at index %d has id %d", i, b.ID),
				SpecPath:    fmt.Sprintf("buildings[%d].id", i),
				ActualValue: b.ID,
				Expected:    fmt.Sprintf("%d", i+1),
			})
		}
	}
}

func verifyPlacement(s spec.CitySpec, buildings []Building, r *validation.Report) {
	grid := geo.NewRect(0, 0, s.Grid.Width, s.Grid.Depth)

	for _, b := range buildings {
		if math.Abs(b.Y-b.Height/2) > geo.Epsilon {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Rule:        RuleGroundedY,
				Message:     fmt.Sprintf("building %d y offset %.3f is not half its height %.3f", b.ID, b.Y, b.Height),
				SpecPath:    fmt.Sprintf("buildings.%d.y", b.ID),
				ActualValue: b.Y,
			})
		}
		if !b.Footprint().Within(grid) {
			fp := b.Footprint()
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Rule:        RuleOutOfGrid,
				Message:     fmt.Sprintf("building %d footprint [%.2f, %.2f) x [%.2f, %.2f) leaves the grid", b.ID, fp.Min.X, fp.Max().X, fp.Min.Z, fp.Max().Z),
				SpecPath:    fmt.Sprintf("buildings.%d", b.ID),
				ActualValue: fp,
				Expected:    fmt.Sprintf("within [0, %g) x [0, %g)", s.Grid.Width, s.Grid.Depth),
			})
		}
	}
}

func verifyDimensions(s spec.CitySpec, buildings []Building, r *validation.Report) {
	for _, b := range buildings {
		dims := []struct {
			name  string
			value float64
			rg    spec.Range
			flush bool
		}{
			{"width", b.Width, s.BldgWidth, math.Abs(b.X+b.Width-s.Grid.Width) <= geo.Epsilon},
			{"depth", b.Depth, s.BldgDepth, math.Abs(b.Z+b.Depth-s.Grid.Depth) <= geo.Epsilon},
			{"height", b.Height, s.BldgHeight, false},
		}
		for _, d := range dims {
			if inRange(d.value, d.rg) || (d.flush && d.value >= d.rg.Min-geo.Epsilon) {
				continue
			}
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Rule:        RuleDimension,
				Message:     fmt.Sprintf("building %d %s %.3f outside [%g, %g]", b.ID, d.name, d.value, d.rg.Min, d.rg.Max),
				SpecPath:    fmt.Sprintf("buildings.%d.%s", b.ID, d.name),
				ActualValue: d.value,
				Expected:    fmt.Sprintf("[%g, %g]", d.rg.Min, d.rg.Max),
			})
		}
	}
}

// verifyOverlap sweeps footprints sorted by X so each building is only
// compared with those whose X span can still reach it.
func verifyOverlap(buildings []Building, r *validation.Report) {
	order := make([]int, len(buildings))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return buildings[order[a]].X < buildings[order[b]].X
	})

	for i, ai := range order {
		a := buildings[ai].Footprint()
		for _, bi := range order[i+1:] {
			b := buildings[bi].Footprint()
			if b.Min.X >= a.Max().X-geo.Epsilon {
				break
			}
			if overlap := a.Intersection(b); !overlap.IsEmpty() {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Rule:        RuleOverlap,
					Message:     fmt.Sprintf("buildings %d and %d overlap by %.3f m²", buildings[ai].ID, buildings[bi].ID, overlap.Area()),
					SpecPath:    fmt.Sprintf("buildings.%d", buildings[ai].ID),
					ActualValue: overlap,
				})
			}
		}
	}
}

func inRange(v float64, r spec.Range) bool {
	return v >= r.Min-geo.Epsilon && v <= r.Max+geo.Epsilon
}
