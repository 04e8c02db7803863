// Package noise provides a seed-stable 2D coherent noise field with
// multi-octave evaluation, used for tonal variation and stain masks.
package noise

import (
	"github.com/aquilax/go-perlin"
)

// MinScale is the smallest usable feature scale in pixels. Smaller values
// are clamped so a degenerate scale never divides by zero.
const MinScale = 1e-3

// Field is a deterministic 2D noise field. The same seed always produces
// the same field; values are continuous in x and y.
type Field struct {
	p     *perlin.Perlin
	scale float64
}

// New creates a noise field with the given seed and feature scale in pixels
// (higher scale = larger features). Scale is clamped to MinScale.
func New(seed int64, scale float64) *Field {
	if scale < MinScale {
		scale = MinScale
	}
	// alpha: persistence, beta: lacunarity, n: internal octaves
	return &Field{
		p:     perlin.NewPerlin(2.0, 2.0, 3, seed),
		scale: scale,
	}
}

// At samples the field at pixel coordinates (x, y) and returns a value
// in [-1, 1].
func (f *Field) At(x, y float64) float64 {
	return clamp11(f.p.Noise2D(x/f.scale, y/f.scale))
}

// FBM sums octave contributions at geometrically increasing frequencies
// with decreasing amplitude, renormalized to [-1, 1]. Octave counts below
// one are treated as one.
func (f *Field) FBM(x, y float64, octaves int, lacunarity, gain float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	amp := 1.0
	freq := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += amp * f.p.Noise2D(x*freq/f.scale, y*freq/f.scale)
		norm += amp
		amp *= gain
		freq *= lacunarity
	}
	return clamp11(sum / norm)
}

func clamp11(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
