package layout

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// Stats summarizes a generated layout.
type Stats struct {
	Count         int     `json:"count"`
	Rows          int     `json:"rows"`
	FootprintArea float64 `json:"footprint_area_m2"`
	Coverage      float64 `json:"coverage"` // footprint area / grid area
	MinHeight     float64 `json:"min_height"`
	MaxHeight     float64 `json:"max_height"`
	MeanHeight    float64 `json:"mean_height"`
}

// Summarize computes layout statistics. Buildings sharing a Z origin
// count as one row.
func Summarize(s spec.CitySpec, buildings []Building) Stats {
	st := Stats{Count: len(buildings)}
	if len(buildings) == 0 {
		return st
	}

	st.MinHeight = math.Inf(1)
	rows := make(map[float64]struct{})
	totalHeight := 0.0
	for _, b := range buildings {
		rows[b.Z] = struct{}{}
		st.FootprintArea += b.Width * b.Depth
		totalHeight += b.Height
		st.MinHeight = math.Min(st.MinHeight, b.Height)
		st.MaxHeight = math.Max(st.MaxHeight, b.Height)
	}

	st.Rows = len(rows)
	st.MeanHeight = totalHeight / float64(len(buildings))
	if area := s.Grid.Area(); area > 0 {
		st.Coverage = st.FootprintArea / area
	}
	return st
}
