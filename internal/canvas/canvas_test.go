package canvas

import (
	"testing"
)

func TestNewRejectsDegenerateDimensions(t *testing.T) {
	if _, err := New(0, 100); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(100, 0); err == nil {
		t.Fatal("expected error for zero height")
	}
	if _, err := New(-1, -1); err == nil {
		t.Fatal("expected error for negative dimensions")
	}
}

func TestNewOnePixel(t *testing.T) {
	c, err := New(1, 1)
	if err != nil {
		t.Fatalf("1x1 canvas should be valid: %v", err)
	}
	c.Fill(0.5, 0.5, 0.5)
	img := c.Image()
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestClamp(t *testing.T) {
	c, err := New(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	c.R[0] = -0.5
	c.G[0] = 1.5
	c.B[1] = 2.0
	c.Clamp()

	if c.R[0] != 0 {
		t.Fatalf("expected clamped 0, got %v", c.R[0])
	}
	if c.G[0] != 1 {
		t.Fatalf("expected clamped 1, got %v", c.G[0])
	}
	if c.B[1] != 1 {
		t.Fatalf("expected clamped 1, got %v", c.B[1])
	}
}

func TestImageClampsOverflow(t *testing.T) {
	c, _ := New(1, 1)
	c.R[0] = 3.0
	c.G[0] = -1.0
	c.B[0] = 0.25

	px := c.Image().NRGBAAt(0, 0)
	if px.R != 255 {
		t.Fatalf("expected R=255, got %d", px.R)
	}
	if px.G != 0 {
		t.Fatalf("expected G=0, got %d", px.G)
	}
	if px.B != 64 {
		t.Fatalf("expected B=64, got %d", px.B)
	}
	if px.A != 255 {
		t.Fatalf("expected opaque pixel, got %d", px.A)
	}
}

func TestCloneAndEqual(t *testing.T) {
	c, _ := New(3, 2)
	c.Fill(0.1, 0.2, 0.3)
	d := c.Clone()

	if !c.Equal(d) {
		t.Fatal("clone should equal original")
	}

	d.R[0] = 0.9
	if c.Equal(d) {
		t.Fatal("mutated clone should not equal original")
	}
	if c.R[0] != 0.1 {
		t.Fatal("mutating clone must not touch original")
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(1, 0.3, 0); got != 1 {
		t.Fatalf("t=0 should return a, got %v", got)
	}
	if got := Lerp(1, 0.3, 1); got != 0.3 {
		t.Fatalf("t=1 should return b, got %v", got)
	}
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Fatalf("expected midpoint 5, got %v", got)
	}
}
