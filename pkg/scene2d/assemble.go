// Package scene2d builds a top-down plan of a generated layout for 2D
// viewers and reports.
package scene2d

import (
	"time"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/scene"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// HeightBands is the number of equal-width bands the height range is split into.
const HeightBands = 4

// Assemble2D converts a generated layout into a plan. Buildings must be in
// generation order, so each row is a contiguous run with equal Z.
func Assemble2D(s spec.CitySpec, seed uint64, buildings []layout.Building) *Scene2D {
	footprints, rows := assembleRows(s, buildings)
	st := layout.Summarize(s, buildings)

	return &Scene2D{
		Metadata: Metadata{
			Seed:          seed,
			BuildingCount: st.Count,
			RowCount:      len(rows),
			Coverage:      st.Coverage,
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		},
		Grid: Grid2D{
			Width:    s.Grid.Width,
			Depth:    s.Grid.Depth,
			Boundary: polygon(geo.NewRect(0, 0, s.Grid.Width, s.Grid.Depth)),
		},
		Rows:       rows,
		Footprints: footprints,
		Heights:    assembleHeightBands(s.BldgHeight, buildings),
	}
}

func assembleRows(s spec.CitySpec, buildings []layout.Building) ([]Footprint2D, []Row2D) {
	footprints := make([]Footprint2D, 0, len(buildings))
	rows := []Row2D{}

	for i, b := range buildings {
		if i == 0 || b.Z != buildings[i-1].Z {
			rows = append(rows, Row2D{
				Index:       len(rows),
				Z:           b.Z,
				Depth:       b.Depth,
				Boundary:    polygon(geo.NewRect(0, b.Z, s.Grid.Width, b.Depth)),
				BuildingIDs: []string{},
			})
		}
		row := &rows[len(rows)-1]
		id := scene.BoxName(b.ID)
		row.BuildingIDs = append(row.BuildingIDs, id)

		fp := b.Footprint()
		c := fp.Center()
		footprints = append(footprints, Footprint2D{
			ID:      id,
			Row:     row.Index,
			Center:  [2]float64{c.X, c.Z},
			Polygon: polygon(fp),
			Height:  b.Height,
		})
	}
	return footprints, rows
}

func assembleHeightBands(r spec.Range, buildings []layout.Building) []HeightBand {
	step := (r.Max - r.Min) / HeightBands
	if step <= 0 {
		return []HeightBand{{From: r.Min, To: r.Max, Count: len(buildings)}}
	}

	bands := make([]HeightBand, HeightBands)
	for i := range bands {
		bands[i] = HeightBand{From: r.Min + float64(i)*step, To: r.Min + float64(i+1)*step}
	}
	bands[HeightBands-1].To = r.Max

	for _, b := range buildings {
		i := int((b.Height - r.Min) / step)
		i = max(0, min(i, HeightBands-1))
		bands[i].Count++
	}
	return bands
}

// polygon returns the rectangle's corners counter-clockwise from Min.
func polygon(r geo.Rect) [][2]float64 {
	mx := r.Max()
	return [][2]float64{
		{r.Min.X, r.Min.Z},
		{mx.X, r.Min.Z},
		{mx.X, mx.Z},
		{r.Min.X, mx.Z},
	}
}
