package layout

import (
	"testing"

	"github.com/ChicagoDave/citygen/pkg/random"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

func BenchmarkGenerate(b *testing.B) {
	sizes := []struct {
		name string
		grid float64
	}{
		{"50m", 50},
		{"500m", 500},
		{"2km", 2000},
	}
	for _, sz := range sizes {
		s := spec.Default()
		s.Grid = spec.GridSpec{Width: sz.grid, Depth: sz.grid}
		b.Run(sz.name, func(b *testing.B) {
			src := random.New(1)
			for i := 0; i < b.N; i++ {
				Generate(s, src)
			}
		})
	}
}

func BenchmarkVerify(b *testing.B) {
	s := spec.Default()
	s.Grid = spec.GridSpec{Width: 500, Depth: 500}
	buildings := Generate(s, random.New(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Verify(s, buildings)
	}
}
