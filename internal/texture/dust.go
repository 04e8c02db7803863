package texture

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

const (
	// dustBudget patches per reference area. The dust haze is a fixed
	// character of the surface, not a user knob.
	dustBudget = 15.0

	// dustLighten is the peak luminance added where the haze is fully
	// opaque, about 15 steps on an 8-bit scale.
	dustLighten = 15.0 / 255.0
)

// applyDust overlays soft whitish patches simulating mineral dust deposits.
// It runs last so the haze mutes every layer beneath it uniformly. Unlike
// staining, the patch field is Gaussian-blurred and alpha-added, so edges
// are soft.
func applyDust(c *canvas.Canvas, _ Params, rng *rand.Rand) error {
	count := scaledCount(dustBudget, 1.0, c.W, c.H)
	if count < 1 {
		count = 1
	}

	patchR := min(c.W, c.H) / 5
	if patchR < 2 {
		patchR = 2
	}

	field := image.NewGray(image.Rect(0, 0, c.W, c.H))
	for i := 0; i < count; i++ {
		// Centers may fall outside the canvas so patches can bleed in
		// from the edges.
		cx := rng.Intn(c.W+2*patchR) - patchR
		cy := rng.Intn(c.H+2*patchR) - patchR
		level := uint8(10 + rng.Intn(21))
		ry := int(float64(patchR) * (0.6 + rng.Float64()*0.8))
		fillEllipse(field, cx, cy, patchR, ry, level)
	}

	blurred := gaussianBlurGray(field, float32(patchR)/4)

	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			a := float64(blurred.GrayAt(x, y).Y) / 255.0
			c.Add(c.Idx(x, y), a*dustLighten)
		}
	}

	return nil
}

// fillEllipse raises the field to at least level inside the ellipse,
// clipped to the image bounds.
func fillEllipse(img *image.Gray, cx, cy, rx, ry int, level uint8) {
	if rx <= 0 || ry <= 0 {
		return
	}
	b := img.Bounds()
	rx2 := float64(rx * rx)
	ry2 := float64(ry * ry)
	for dy := -ry; dy <= ry; dy++ {
		y := cy + dy
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for dx := -rx; dx <= rx; dx++ {
			x := cx + dx
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			if float64(dx*dx)/rx2+float64(dy*dy)/ry2 <= 1 {
				if img.GrayAt(x, y).Y < level {
					img.SetGray(x, y, color.Gray{Y: level})
				}
			}
		}
	}
}
