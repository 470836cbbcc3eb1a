package scene

import (
	"testing"

	"github.com/ChicagoDave/citygen/pkg/layout"
)

func validGraph() *Graph {
	return Assemble(testProject(), 1, []layout.Building{
		{ID: 1, X: 0, Y: 6, Z: 0, Width: 5, Depth: 5, Height: 12},
		{ID: 2, X: 5, Y: 4.5, Z: 0, Width: 5, Depth: 5, Height: 9},
	})
}

func TestValidateGraph_Valid(t *testing.T) {
	r := ValidateGraph(validGraph())
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestValidateGraph_Nil(t *testing.T) {
	r := ValidateGraph(nil)
	if r.Valid {
		t.Error("expected invalid for nil graph")
	}
}

func TestValidateGraph_DuplicateID(t *testing.T) {
	g := validGraph()
	g.CreateBox("pCube1", Vec3{X: 20, Y: 1, Z: 30}, Vec3{X: 5, Y: 2, Z: 5}, nil)
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for duplicate ID")
	}
}

func TestValidateGraph_OrphanedGroupReference(t *testing.T) {
	g := validGraph()
	g.Groups.Named[CityGroup] = append(g.Groups.Named[CityGroup], "nonexistent")
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for orphaned group reference")
	}
}

func TestValidateGraph_MissingCityGroupMembership(t *testing.T) {
	g := validGraph()
	g.Groups.Named[CityGroup] = g.Groups.Named[CityGroup][:1]
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for building outside the city group")
	}
}

func TestValidateGraph_MissingTypeIndex(t *testing.T) {
	g := validGraph()
	delete(g.Groups.EntityTypes, EntityBuilding)
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for missing entity_types group")
	}
}

func TestValidateGraph_EmptyID(t *testing.T) {
	g := validGraph()
	g.Entities = append(g.Entities, Entity{
		ID:         "",
		Type:       EntityBuilding,
		Dimensions: Vec3{X: 2, Y: 1, Z: 2},
	})
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for empty ID")
	}
}

func TestValidateGraph_ZeroDimensionWarning(t *testing.T) {
	g := validGraph()
	g.Entities[0].Dimensions.Y = 0
	r := ValidateGraph(g)
	if len(r.Warnings) == 0 {
		t.Error("expected warning for zero dimension")
	}
}

func TestValidateGraph_StaleBoundsWarning(t *testing.T) {
	g := validGraph()
	g.Metadata.CityBounds.Max.X = 6
	r := ValidateGraph(g)
	if len(r.Warnings) == 0 {
		t.Error("expected warning for bounds that do not enclose entities")
	}
}

func TestValidateGraph_RealGraph(t *testing.T) {
	g := assembleTestGraph(t)
	r := ValidateGraph(g)
	if !r.Valid {
		t.Errorf("real graph validation failed: %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
	t.Logf("validated %d entities: %s", len(g.Entities), r.Summary)
}
