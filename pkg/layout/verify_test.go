package layout

import (
	"testing"

	"github.com/ChicagoDave/citygen/pkg/random"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

func validLayout() (spec.CitySpec, []Building) {
	s := gridSpec(10, 10, rng(5, 5), rng(5, 5), rng(1, 1), 0)
	return s, Generate(s, random.Min{})
}

func TestVerify_Valid(t *testing.T) {
	s, buildings := validLayout()
	r := Verify(s, buildings)
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
}

func TestVerify_Empty(t *testing.T) {
	if r := Verify(spec.Default(), nil); !r.Valid {
		t.Errorf("empty layout should verify, got %v", r.Messages())
	}
}

func TestVerify_DetectsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Building)
		want   validation.Rule
	}{
		{"overlap", func(b []Building) { b[1].X = 4 }, RuleOverlap},
		{"out of grid", func(b []Building) { b[3].X = 6 }, RuleOutOfGrid},
		{"negative origin", func(b []Building) { b[0].Z = -1 }, RuleOutOfGrid},
		{"floating", func(b []Building) { b[2].Y = 3 }, RuleGroundedY},
		{"id gap", func(b []Building) { b[2].ID = 9 }, RuleSequence},
		{"too tall", func(b []Building) { b[0].Height, b[0].Y = 4, 2 }, RuleDimension},
		{"too narrow", func(b []Building) { b[0].Width = 2 }, RuleDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buildings := validLayout()
			tt.mutate(buildings)
			r := Verify(s, buildings)
			if r.Valid {
				t.Fatal("expected invalid report")
			}
			if !r.HasRule(tt.want) {
				t.Errorf("missing rule %s, got %v", tt.want, r.Rules())
			}
		})
	}
}

func TestVerify_FlushRemainder(t *testing.T) {
	tests := []struct {
		name      string
		lastWidth float64
		wantValid bool
	}{
		{"clamped between min and max", 4, true},
		{"float drift below min", 3 - 1e-12, true},
		{"below min", 2.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gridSpec(10, 10, rng(3, 8), rng(10, 10), rng(1, 1), 0)
			x := 10 - tt.lastWidth
			buildings := []Building{
				{ID: 1, X: 0, Y: 0.5, Z: 0, Width: x, Depth: 10, Height: 1},
				{ID: 2, X: x, Y: 0.5, Z: 0, Width: tt.lastWidth, Depth: 10, Height: 1},
			}
			r := Verify(s, buildings)
			if r.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v: %v", r.Valid, tt.wantValid, r.Messages())
			}
			if !tt.wantValid && !r.HasRule(RuleDimension) {
				t.Errorf("missing rule %s, got %v", RuleDimension, r.Rules())
			}
		})
	}
}

func TestVerify_TouchingFootprintsDoNotOverlap(t *testing.T) {
	s := gridSpec(10, 5, rng(5, 5), rng(5, 5), rng(1, 1), 0)
	buildings := []Building{
		{ID: 1, X: 0, Y: 0.5, Z: 0, Width: 5, Depth: 5, Height: 1},
		{ID: 2, X: 5, Y: 0.5, Z: 0, Width: 5, Depth: 5, Height: 1},
	}
	if r := Verify(s, buildings); r.HasRule(RuleOverlap) {
		t.Errorf("edge-sharing footprints flagged as overlapping: %v", r.Messages())
	}
}
