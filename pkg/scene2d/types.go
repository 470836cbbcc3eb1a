package scene2d

// Scene2D is the top-down plan of a generated city: the grid outline,
// each row strip and each building footprint as XZ polygons.
type Scene2D struct {
	Metadata   Metadata      `json:"metadata"`
	Grid       Grid2D        `json:"grid"`
	Rows       []Row2D       `json:"rows"`
	Footprints []Footprint2D `json:"footprints"`
	Heights    []HeightBand  `json:"height_bands"`
}

// Metadata holds plan-level summary data.
type Metadata struct {
	Seed          uint64  `json:"seed"`
	BuildingCount int     `json:"building_count"`
	RowCount      int     `json:"row_count"`
	Coverage      float64 `json:"coverage"`
	GeneratedAt   string  `json:"generated_at"`
}

// Grid2D is the ground plane outline.
type Grid2D struct {
	Width    float64      `json:"width"`
	Depth    float64      `json:"depth"`
	Boundary [][2]float64 `json:"boundary"`
}

// Row2D is one strip of buildings sharing a Z origin and depth.
type Row2D struct {
	Index       int          `json:"index"`
	Z           float64      `json:"z"`
	Depth       float64      `json:"depth"`
	Boundary    [][2]float64 `json:"boundary"`
	BuildingIDs []string     `json:"building_ids"`
}

// Footprint2D is a single building seen from above.
type Footprint2D struct {
	ID      string       `json:"id"`
	Row     int          `json:"row"`
	Center  [2]float64   `json:"center"`
	Polygon [][2]float64 `json:"polygon"`
	Height  float64      `json:"height"`
}

// HeightBand counts buildings whose height falls in [From, To).
// The last band includes its upper bound.
type HeightBand struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}
