package texture

import (
	"math/rand"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

const (
	// stippleBlock is the cell size of the coarse stipple pass in pixels.
	stippleBlock = 2
	// stippleAmplitude is the coarse per-cell luminance swing at roughness 1.
	stippleAmplitude = 0.035
	// grainSigma is the fine per-pixel Gaussian amplitude at roughness 1,
	// about 8 steps on an 8-bit scale.
	grainSigma = 8.0 / 255.0

	// pitBudget pinholes per reference area at density 1.
	pitBudget = 300.0
	// pitDarken multiplies covered pixels; overlaps compound.
	pitDarken = 0.72

	// aggregateBudget speckles per reference area at density 1.
	aggregateBudget = 500.0
)

// applyStipple perturbs luminance in coarse cells, giving the sandy base
// texture a lower spatial frequency than the fine grain pass.
func applyStipple(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	if p.Roughness <= 0 {
		return nil
	}
	amp := stippleAmplitude * p.Roughness

	for by := 0; by < c.H; by += stippleBlock {
		for bx := 0; bx < c.W; bx += stippleBlock {
			delta := (rng.Float64()*2 - 1) * amp
			for y := by; y < by+stippleBlock && y < c.H; y++ {
				for x := bx; x < bx+stippleBlock && x < c.W; x++ {
					c.Add(c.Idx(x, y), delta)
				}
			}
		}
	}
	return nil
}

// applyFineGrain adds independent per-pixel Gaussian noise on top of the
// coarse stipple.
func applyFineGrain(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	if p.Roughness <= 0 {
		return nil
	}
	amp := grainSigma * p.Roughness

	for i := range c.R {
		c.Add(i, rng.NormFloat64()*amp)
	}
	return nil
}

// applyPitting stamps small dark filled circles simulating trapped air
// bubbles. The circle interior is uniformly darkened by a fixed factor, not
// alpha-blended, and overlapping pits compound.
func applyPitting(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	count := scaledCount(pitBudget, p.PittingDensity, c.W, c.H)

	for i := 0; i < count; i++ {
		cx := rng.Intn(c.W)
		cy := rng.Intn(c.H)
		radius := (1 + rng.Float64()*3) * p.PittingSize
		scaleDisc(c, cx, cy, radius, pitDarken)
	}
	return nil
}

// applyAggregate stamps sharp-edged spots simulating embedded stone and
// sand. Contrast is a step function at the spot boundary; the offset is
// biased dark but can lighten.
func applyAggregate(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	count := scaledCount(aggregateBudget, p.AggregateDensity, c.W, c.H)

	for i := 0; i < count; i++ {
		cx := rng.Intn(c.W)
		cy := rng.Intn(c.H)
		radius := 2 + rng.Float64()*6
		offset := -30.0/255.0 + rng.Float64()*(50.0/255.0)
		addDisc(c, cx, cy, radius, offset)
	}
	return nil
}

// scaleDisc multiplies every pixel whose center lies inside the disc.
func scaleDisc(c *canvas.Canvas, cx, cy int, radius, factor float64) {
	forEachDiscPixel(c, cx, cy, radius, func(i int) { c.Scale(i, factor) })
}

// addDisc shifts every pixel whose center lies inside the disc.
func addDisc(c *canvas.Canvas, cx, cy int, radius, delta float64) {
	forEachDiscPixel(c, cx, cy, radius, func(i int) { c.Add(i, delta) })
}

func forEachDiscPixel(c *canvas.Canvas, cx, cy int, radius float64, fn func(i int)) {
	r := int(radius)
	r2 := radius * radius
	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		if y < 0 || y >= c.H {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			x := cx + dx
			if x < 0 || x >= c.W {
				continue
			}
			if float64(dx*dx+dy*dy) <= r2 {
				fn(c.Idx(x, y))
			}
		}
	}
}
