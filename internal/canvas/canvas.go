// Package canvas provides the mutable float RGB buffer the layer pipeline
// operates on. Channels are kept as float64 in [0,1] during generation and
// converted to 8-bit only at the end.
package canvas

import (
	"fmt"
	"image"
	"image/color"
)

// Canvas is a W×H buffer of RGB samples stored as separate float planes.
// Dimensions are fixed at creation.
type Canvas struct {
	W int
	H int
	R []float64
	G []float64
	B []float64
}

// New allocates a canvas. Width and height must be positive.
func New(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas dimensions must be positive, got %dx%d", w, h)
	}
	n := w * h
	return &Canvas{
		W: w,
		H: h,
		R: make([]float64, n),
		G: make([]float64, n),
		B: make([]float64, n),
	}, nil
}

// Idx returns the plane offset for pixel (x, y).
func (c *Canvas) Idx(x, y int) int { return y*c.W + x }

// Fill sets every pixel to the given normalized color.
func (c *Canvas) Fill(r, g, b float64) {
	for i := range c.R {
		c.R[i] = r
		c.G[i] = g
		c.B[i] = b
	}
}

// Add shifts all three channels of pixel i by delta.
func (c *Canvas) Add(i int, delta float64) {
	c.R[i] += delta
	c.G[i] += delta
	c.B[i] += delta
}

// Scale multiplies all three channels of pixel i by factor.
func (c *Canvas) Scale(i int, factor float64) {
	c.R[i] *= factor
	c.G[i] *= factor
	c.B[i] *= factor
}

// Clamp forces every channel back into [0,1]. Called after each layer so
// overflow never propagates between layers.
func (c *Canvas) Clamp() {
	for i := range c.R {
		c.R[i] = Clamp01(c.R[i])
		c.G[i] = Clamp01(c.G[i])
		c.B[i] = Clamp01(c.B[i])
	}
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{
		W: c.W,
		H: c.H,
		R: make([]float64, len(c.R)),
		G: make([]float64, len(c.G)),
		B: make([]float64, len(c.B)),
	}
	copy(out.R, c.R)
	copy(out.G, c.G)
	copy(out.B, c.B)
	return out
}

// Equal reports whether two canvases hold bit-identical samples.
func (c *Canvas) Equal(o *Canvas) bool {
	if c.W != o.W || c.H != o.H {
		return false
	}
	for i := range c.R {
		if c.R[i] != o.R[i] || c.G[i] != o.G[i] || c.B[i] != o.B[i] {
			return false
		}
	}
	return true
}

// Image converts the canvas to an 8-bit NRGBA image, clamping channels.
func (c *Canvas) Image() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, c.W, c.H))
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			i := c.Idx(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(Clamp01(c.R[i])*255 + 0.5),
				G: uint8(Clamp01(c.G[i])*255 + 0.5),
				B: uint8(Clamp01(c.B[i])*255 + 0.5),
				A: 255,
			})
		}
	}
	return out
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
