package texture

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

// knockdownAmplitude is the peak tonal offset of the splatter layer at
// intensity 1 after the blurred field is renormalized.
const knockdownAmplitude = 0.055

// applyKnockdown builds the flattened-splatter look: a per-pixel random
// field is low-pass filtered with a true Gaussian convolution, then the
// smoothed "hills and valleys" are added to the canvas tone. Intensity 0
// is an exact no-op.
func applyKnockdown(c *canvas.Canvas, p Params, rng *rand.Rand) error {
	if p.KnockdownIntensity <= 0 {
		return nil
	}

	field := image.NewGray(image.Rect(0, 0, c.W, c.H))
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			field.SetGray(x, y, color.Gray{Y: uint8(rng.Intn(256))})
		}
	}

	// The blur radius is what makes this splatter instead of grain; keep
	// the sigma at one pixel or more so the filter never degenerates.
	sigma := float32(p.KnockdownScale)
	if sigma < 1 {
		sigma = 1
	}
	blurred := gaussianBlurGray(field, sigma)

	// Renormalize the smoothed field to full range before scaling, so the
	// hill/valley contrast does not wash out at large blur radii.
	lo, hi := grayExtents(blurred)
	span := float64(hi - lo)
	if span <= 0 {
		return nil
	}

	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			v := (float64(blurred.GrayAt(x, y).Y)-float64(lo))/span*2 - 1
			c.Add(c.Idx(x, y), v*knockdownAmplitude*p.KnockdownIntensity)
		}
	}
	return nil
}

func gaussianBlurGray(src *image.Gray, sigma float32) *image.Gray {
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

func grayExtents(img *image.Gray) (lo, hi uint8) {
	lo, hi = 255, 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := img.GrayAt(x, y).Y
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
