// Package texture implements the concrete surface pipeline: an ordered list
// of stochastic layer transforms composited onto a base color canvas.
package texture

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

// Per-layer seed offsets. Each layer draws from its own sub-stream derived
// from the base seed, so skipping a zero-intensity layer never shifts the
// draws of any other layer.
const (
	seedTonal     = 101
	seedKnockdown = 911
	seedStipple   = 313
	seedGrain     = 517
	seedPitting   = 733
	seedAggregate = 1103
	seedStaining  = 1307
	seedCracks    = 1511
	seedDust      = 4242
)

// referenceArea normalizes feature counts so densities look the same at any
// resolution (counts scale with area, not a fixed number per image).
const referenceArea = 512.0 * 512.0

// Layer is one transform of the pipeline. Apply mutates the canvas in place
// using only the params and its own random stream.
type Layer struct {
	Name       string
	seedOffset int64
	apply      func(*canvas.Canvas, Params, *rand.Rand) error
}

// Layers returns the pipeline in its fixed order. The order is a contract:
// staining precedes cracks so crack lines stay visible, and dust comes last
// so it mutes everything beneath it.
func Layers() []Layer {
	return []Layer{
		{Name: "base", seedOffset: 0, apply: applyBaseFill},
		{Name: "tonal-noise", seedOffset: seedTonal, apply: applyTonalNoise},
		{Name: "knockdown", seedOffset: seedKnockdown, apply: applyKnockdown},
		{Name: "stipple", seedOffset: seedStipple, apply: applyStipple},
		{Name: "fine-grain", seedOffset: seedGrain, apply: applyFineGrain},
		{Name: "pitting", seedOffset: seedPitting, apply: applyPitting},
		{Name: "aggregate", seedOffset: seedAggregate, apply: applyAggregate},
		{Name: "staining", seedOffset: seedStaining, apply: applyStaining},
		{Name: "cracks", seedOffset: seedCracks, apply: applyCracks},
		{Name: "dust", seedOffset: seedDust, apply: applyDust},
	}
}

// Render runs the full pipeline and returns the float canvas. Any layer
// failure aborts the whole generation; there is no partial recovery.
func Render(p Params) (*canvas.Canvas, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c, err := canvas.New(p.Width, p.Height)
	if err != nil {
		return nil, err
	}

	for _, layer := range Layers() {
		rng := rand.New(rand.NewSource(p.Seed + layer.seedOffset))
		if err := layer.apply(c, p, rng); err != nil {
			return nil, fmt.Errorf("layer %s failed: %w", layer.Name, err)
		}
		c.Clamp()
	}

	return c, nil
}

// Generate runs the pipeline and returns the finished 8-bit image.
func Generate(p Params) (*image.NRGBA, error) {
	c, err := Render(p)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// scaledCount converts a per-reference-area feature budget into a count for
// the given canvas, scaled by a density knob.
func scaledCount(base, density float64, w, h int) int {
	return int(math.Round(base * density * float64(w*h) / referenceArea))
}
