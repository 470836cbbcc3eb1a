package spec

// CurrentVersion is the project file format written by this release.
const CurrentVersion = "0.1.0"

// Range is an inclusive [Min, Max] bound on a building dimension, in meters.
type Range struct {
	Min float64 `yaml:"min" toml:"min" json:"min"`
	Max float64 `yaml:"max" toml:"max" json:"max"`
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// GridSpec is the rectangular ground plane the city is laid out on.
// Width runs along X, Depth along Z.
type GridSpec struct {
	Width float64 `yaml:"width" toml:"width" json:"width"`
	Depth float64 `yaml:"depth" toml:"depth" json:"depth"`
}

// Area returns the ground plane area in m².
func (g GridSpec) Area() float64 {
	return g.Width * g.Depth
}

// CitySpec holds every parameter the layout generator consumes.
// It is passed by value so validation and generation never mutate the caller's copy.
type CitySpec struct {
	Grid       GridSpec `yaml:"grid" toml:"grid" json:"grid"`
	BldgWidth  Range    `yaml:"building_width" toml:"building_width" json:"building_width"`
	BldgDepth  Range    `yaml:"building_depth" toml:"building_depth" json:"building_depth"`
	BldgHeight Range    `yaml:"building_height" toml:"building_height" json:"building_height"`
	MinSpacing float64  `yaml:"min_spacing" toml:"min_spacing" json:"min_spacing"`
}

// Project is the on-disk project file: a CitySpec plus run settings.
type Project struct {
	SpecVersion string   `yaml:"spec_version" toml:"spec_version" json:"spec_version"`
	Seed        uint64   `yaml:"seed" toml:"seed" json:"seed"` // 0 picks a fresh seed per run
	City        CitySpec `yaml:"city" toml:"city" json:"city"`
}

// Default returns the parameters the generator ships with: a 50x50 grid
// of buildings 1-5m wide and deep and 1-10m tall, packed without spacing.
func Default() CitySpec {
	return CitySpec{
		Grid:       GridSpec{Width: 50, Depth: 50},
		BldgWidth:  Range{Min: 1, Max: 5},
		BldgDepth:  Range{Min: 1, Max: 5},
		BldgHeight: Range{Min: 1, Max: 10},
		MinSpacing: 0,
	}
}
