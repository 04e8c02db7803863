package texture

import (
	"math"
	"math/rand"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

const (
	// crackBudget polylines per reference area at density 1.
	crackBudget = 8.0

	// crackDepth is the luminance removed at the start of a crack; strokes
	// fade toward the tail.
	crackDepth = 25.0 / 255.0

	crackMinSteps = 50
	crackMaxSteps = 200
	crackJitter   = 0.3 // max angular deviation per step, radians
)

// applyCracks strokes jagged random-walk polylines one pixel wide. Each
// walk is bounded by a step count and stops at the canvas edge, so no crack
// can run off-canvas indefinitely.
func applyCracks(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	count := scaledCount(crackBudget, p.CrackDensity, c.W, c.H)

	for i := 0; i < count; i++ {
		x := rng.Float64() * float64(c.W)
		y := rng.Float64() * float64(c.H)
		angle := rng.Float64() * 2 * math.Pi
		steps := crackMinSteps + rng.Intn(crackMaxSteps-crackMinSteps+1)

		for s := 0; s < steps; s++ {
			angle += (rng.Float64()*2 - 1) * crackJitter
			step := 1 + rng.Float64()*2

			x += math.Cos(angle) * step
			y += math.Sin(angle) * step
			if x < 0 || x >= float64(c.W) || y < 0 || y >= float64(c.H) {
				break
			}

			// Fade along the length so the tail thins out.
			fade := canvas.Lerp(1, 0.3, float64(s)/float64(steps))
			stampCrackPixel(c, x, y, crackDepth*fade)
		}
	}
	return nil
}

// stampCrackPixel darkens the single pixel under the walk position, giving
// a one pixel stroke width.
func stampCrackPixel(c *canvas.Canvas, x, y, depth float64) {
	px := int(x)
	py := int(y)
	if px < 0 || px >= c.W || py < 0 || py >= c.H {
		return
	}
	c.Add(c.Idx(px, py), -depth)
}
