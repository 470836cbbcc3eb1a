package random

import "testing"

func TestSeededReproducible(t *testing.T) {
	a := New(7)
	b := New(7)
	for i := 0; i < 100; i++ {
		va, vb := a.Uniform(1, 5), b.Uniform(1, 5)
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
	}
}

func TestSeededDifferentSeeds(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 20; i++ {
		if a.Uniform(0, 1) == b.Uniform(0, 1) {
			same++
		}
	}
	if same == 20 {
		t.Error("different seeds produced identical sequences")
	}
}

func TestSeededBounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("Uniform(3, 7) = %v, out of range", v)
		}
	}
	if v := s.Uniform(4, 4); v != 4 {
		t.Errorf("Uniform(4, 4) = %v, want 4", v)
	}
	if got := s.Seed(); got != 99 {
		t.Errorf("Seed() = %d, want 99", got)
	}
}

func TestStubs(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want float64
	}{
		{"min", Min{}, 2},
		{"max", Max{}, 6},
		{"half", Fraction(0.5), 4},
		{"zero fraction", Fraction(0), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.src.Uniform(2, 6); got != tt.want {
				t.Errorf("Uniform(2, 6) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Source: Min{}}
	r.Uniform(1, 2)
	r.Uniform(3, 4)
	if len(r.Calls) != 2 {
		t.Fatalf("recorded %d calls, want 2", len(r.Calls))
	}
	if r.Calls[1] != (Call{Lo: 3, Hi: 4, Value: 3}) {
		t.Errorf("second call = %+v", r.Calls[1])
	}
}

func TestNewSeedNonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		if NewSeed() == 0 {
			t.Fatal("NewSeed returned 0")
		}
	}
}
