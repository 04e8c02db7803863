package texture

import (
	"math/rand"
	"testing"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

func BenchmarkGenerate256(b *testing.B) {
	p := DefaultParams(256, 256, testBase, 42)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate512(b *testing.B) {
	p := DefaultParams(512, 512, testBase, 42)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLayers(b *testing.B) {
	p := DefaultParams(256, 256, testBase, 42)

	for _, layer := range Layers() {
		b.Run(layer.Name, func(b *testing.B) {
			c, err := canvas.New(p.Width, p.Height)
			if err != nil {
				b.Fatal(err)
			}
			c.Fill(0.5, 0.5, 0.5)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				rng := rand.New(rand.NewSource(p.Seed + layer.seedOffset))
				if err := layer.apply(c, p, rng); err != nil {
					b.Fatal(err)
				}
				c.Clamp()
			}
		})
	}
}
