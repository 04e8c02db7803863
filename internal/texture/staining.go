package texture

import (
	"math/rand"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
	"github.com/MeKo-Tech/concretegen/internal/noise"
)

const (
	// stainBaseScale is the stain field feature size in pixels at
	// NoiseScale 1; much coarser than the tonal layer so patches read as
	// water marks, not shading.
	stainBaseScale = 180.0

	// stainDarken multiplies pixels inside the stain mask.
	stainDarken = 0.93
)

// applyStaining thresholds a low-frequency noise field into a binary mask
// and darkens it with a hard boundary. The hard edge is deliberate: it
// mimics dried water-mark rims rather than airbrushed blending.
func applyStaining(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	if p.StainingIntensity <= 0 {
		return nil
	}

	// Intensity widens the mask by lowering the threshold. At intensity 0
	// the threshold sits above the field maximum, selecting nothing.
	threshold := 1.05 - 0.3*p.StainingIntensity

	field := noise.New(rng.Int63(), stainBaseScale*p.NoiseScale)
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			// Map the [-1,1] field onto [0,1] to match the threshold range.
			v := (field.FBM(float64(x), float64(y), 3, 2.0, 0.5) + 1) / 2
			if v > threshold {
				c.Scale(c.Idx(x, y), stainDarken)
			}
		}
	}
	return nil
}
