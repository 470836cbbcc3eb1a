package scene

import (
	"fmt"

	"github.com/ChicagoDave/citygen/pkg/validation"
)

// ValidateGraph performs structural validation on a scene graph output.
// It checks entity integrity, group index consistency, and bounds enclosure.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateGroupMembership(g, r)
	validateBoundsEnclosure(g, r)
	validateEntityDimensions(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				SpecPath:    fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				SpecPath:    fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	entityIDs := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		entityIDs[e.ID] = true
	}

	checkGroup := func(groupType, groupName string, ids []string) {
		for _, id := range ids {
			if !entityIDs[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					SpecPath:    fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, ids := range g.Groups.Named {
		checkGroup("named", name, ids)
	}
	for name, ids := range g.Groups.EntityTypes {
		checkGroup("entity_types", string(name), ids)
	}
}

// validateGroupMembership requires every entity to be indexed under its
// type and every building to sit in the city group.
func validateGroupMembership(g *Graph, r *validation.Report) {
	typeMembers := make(map[EntityType]map[string]bool)
	for et, ids := range g.Groups.EntityTypes {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		typeMembers[et] = m
	}

	city := make(map[string]bool, len(g.Groups.Named[CityGroup]))
	for _, id := range g.Groups.Named[CityGroup] {
		city[id] = true
	}

	for _, e := range g.Entities {
		if e.ID == "" {
			continue
		}

		if tm, ok := typeMembers[e.Type]; !ok {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has type %q but no such entity_types group exists", e.ID, e.Type),
				SpecPath:    "groups.entity_types",
				ActualValue: string(e.Type),
			})
		} else if !tm[e.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has type %q but is not in entity_types group", e.ID, e.Type),
				SpecPath:    fmt.Sprintf("groups.entity_types.%s", e.Type),
				ActualValue: e.ID,
			})
		}

		if e.Type == EntityBuilding && !city[e.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("building %q is not in %s", e.ID, CityGroup),
				SpecPath:    fmt.Sprintf("groups.named.%s", CityGroup),
				ActualValue: e.ID,
			})
		}
	}
}

// validateBoundsEnclosure recomputes the entity AABB and warns when the
// recorded city bounds fail to enclose it.
func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	const tolerance = 1e-6
	if len(g.Entities) == 0 {
		return
	}
	got, want := computeBounds(g.Entities), g.Metadata.CityBounds

	axes := []struct {
		name             string
		lo, hi, bLo, bHi float64
	}{
		{"X", got.Min.X, got.Max.X, want.Min.X, want.Max.X},
		{"Y", got.Min.Y, got.Max.Y, want.Min.Y, want.Max.Y},
		{"Z", got.Min.Z, got.Max.Z, want.Min.Z, want.Max.Z},
	}
	for _, a := range axes {
		if a.lo < a.bLo-tolerance || a.hi > a.bHi+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entities span %s [%.2f, %.2f] outside city bounds [%.2f, %.2f]", a.name, a.lo, a.hi, a.bLo, a.bHi),
				SpecPath:    "metadata.city_bounds",
				ActualValue: [2]float64{a.lo, a.hi},
			})
		}
	}
}

func validateEntityDimensions(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		d := e.Dimensions
		if d.X > 0 && d.Y > 0 && d.Z > 0 {
			continue
		}
		r.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("entity %q has zero or negative dimension (%.2f, %.2f, %.2f)", e.ID, d.X, d.Y, d.Z),
			SpecPath:    fmt.Sprintf("entities.%s.dimensions", e.ID),
			ActualValue: d,
			Expected:    "all dimensions > 0",
		})
	}
}
