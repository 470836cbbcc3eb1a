package scene

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityBuilding EntityType = "building"
)

// CityGroup is the group every generated building is collected under.
const CityGroup = "cityGroup"

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Entity is a single box in the scene graph. Position is the box center.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Position   Vec3           `json:"position"`
	Dimensions Vec3           `json:"dimensions"` // X width, Y height, Z depth
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Graph is the complete scene graph handed to the host application.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	SpecVersion string      `json:"spec_version"`
	Seed        uint64      `json:"seed"`
	RunID       string      `json:"run_id"`
	GeneratedAt string      `json:"generated_at"`
	CityBounds  BoundingBox `json:"city_bounds"`
}

// Groups organizes entity IDs for fast filtering.
type Groups struct {
	Named       map[string][]string     `json:"named"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Named:       make(map[string][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}

// Entity returns the entity with the given ID.
func (g *Graph) Entity(id string) (Entity, bool) {
	for _, e := range g.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
