package texture

import (
	"math/rand"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
	"github.com/MeKo-Tech/concretegen/internal/noise"
)

// tonalAmplitude is the peak luminance shift of the large-scale tonal layer,
// about 15 steps on an 8-bit scale.
const tonalAmplitude = 15.0 / 255.0

// tonalBaseScale is the tonal noise feature size in pixels at NoiseScale 1.
const tonalBaseScale = 100.0

func applyBaseFill(c *canvas.Canvas, p Params, _ *rand.Rand) error {
	c.Fill(
		float64(p.BaseColor.R)/255.0,
		float64(p.BaseColor.G)/255.0,
		float64(p.BaseColor.B)/255.0,
	)
	return nil
}

// applyTonalNoise adds smooth large-scale tonal variation from a
// multi-octave coherent noise field.
func applyTonalNoise(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	field := noise.New(rng.Int63(), tonalBaseScale*p.NoiseScale)

	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			v := field.FBM(float64(x), float64(y), 4, 2.0, 0.5)
			c.Add(c.Idx(x, y), v*tonalAmplitude)
		}
	}
	return nil
}
