package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// Host receives geometry creation calls: one CreateBox per building,
// then a single Group over everything created.
type Host interface {
	CreateBox(name string, center, size Vec3, meta map[string]any) (string, error)
	Group(name string, members []string) error
}

// Instantiate replays a layout onto host. Box names follow the pCube<id>
// convention; the returned names are in building order.
func Instantiate(host Host, buildings []layout.Building) ([]string, error) {
	names := make([]string, 0, len(buildings))
	for _, b := range buildings {
		fp := b.Footprint().Center()
		name, err := host.CreateBox(
			BoxName(b.ID),
			Vec3{X: fp.X, Y: b.Y, Z: fp.Z},
			Vec3{X: b.Width, Y: b.Height, Z: b.Depth},
			map[string]any{
				"building_id": b.ID,
				"origin":      [2]float64{b.X, b.Z},
			},
		)
		if err != nil {
			return names, fmt.Errorf("creating box for building %d: %w", b.ID, err)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return names, nil
	}
	if err := host.Group(CityGroup, names); err != nil {
		return names, fmt.Errorf("grouping %d buildings: %w", len(names), err)
	}
	return names, nil
}

// BoxName returns the entity name for a building id.
func BoxName(id int) string {
	return fmt.Sprintf("pCube%d", id)
}

// Assemble converts a generated layout into a scene graph.
func Assemble(p *spec.Project, seed uint64, buildings []layout.Building) *Graph {
	g := NewGraph()

	// Graph never fails CreateBox or Group.
	_, _ = Instantiate(g, buildings)

	g.Metadata = Metadata{
		SpecVersion: p.SpecVersion,
		Seed:        seed,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		CityBounds:  computeBounds(g.Entities),
	}

	return g
}

// CreateBox adds a building entity to the graph.
func (g *Graph) CreateBox(name string, center, size Vec3, meta map[string]any) (string, error) {
	addEntity(g, Entity{
		ID:         name,
		Type:       EntityBuilding,
		Position:   center,
		Dimensions: size,
		Metadata:   meta,
	})
	return name, nil
}

// Group records a named group over existing entities.
func (g *Graph) Group(name string, members []string) error {
	g.Groups.Named[name] = append(g.Groups.Named[name], members...)
	return nil
}

func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], e.ID)
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range entities {
		half := Vec3{X: e.Dimensions.X / 2, Y: e.Dimensions.Y / 2, Z: e.Dimensions.Z / 2}

		minV.X = math.Min(minV.X, e.Position.X-half.X)
		minV.Y = math.Min(minV.Y, e.Position.Y-half.Y)
		minV.Z = math.Min(minV.Z, e.Position.Z-half.Z)
		maxV.X = math.Max(maxV.X, e.Position.X+half.X)
		maxV.Y = math.Max(maxV.Y, e.Position.Y+half.Y)
		maxV.Z = math.Max(maxV.Z, e.Position.Z+half.Z)
	}
	return BoundingBox{Min: minV, Max: maxV}
}
