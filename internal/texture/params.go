package texture

import (
	"fmt"
	"image/color"
)

// Dimension limits for generated textures. The lower bound of 1 keeps
// degenerate canvases valid for tests and thumbnails.
const (
	MinDimension = 1
	MaxDimension = 8192
)

// Params bundles every tunable knob of the concrete pipeline. Each value has
// a documented range; Validate rejects anything outside it before the
// pipeline runs (knobs are never silently clamped).
type Params struct {
	Width  int
	Height int

	// BaseColor is the resolved concrete base tone.
	BaseColor color.NRGBA

	// Seed drives every per-layer random stream. Same seed and params
	// produce a byte-identical texture.
	Seed int64

	// Roughness scales the stipple and fine-grain amplitude. Range [0,2].
	Roughness float64

	// KnockdownIntensity scales the blurred splatter tonal offset.
	// Range [0,1]; zero disables the layer entirely.
	KnockdownIntensity float64

	// KnockdownScale controls the splatter blur radius in pixels.
	// Range [1,5].
	KnockdownScale float64

	// PittingDensity scales the pinhole count. Range [0,2].
	PittingDensity float64

	// PittingSize scales the pinhole radius. Range [0.5,2].
	PittingSize float64

	// AggregateDensity scales the sharp speckle count. Range [0,2].
	AggregateDensity float64

	// CrackDensity scales the micro-crack count. Range [0,2]; zero draws
	// no cracks at all.
	CrackDensity float64

	// StainingIntensity controls how much of the surface the stain mask
	// covers. Range [0,2]; zero disables the layer.
	StainingIntensity float64

	// NoiseScale stretches the tonal noise features (fine to coarse).
	// Range [0.5,2].
	NoiseScale float64
}

// DefaultParams returns the classic knockdown look for the given geometry.
func DefaultParams(width, height int, base color.NRGBA, seed int64) Params {
	return Params{
		Width:              width,
		Height:             height,
		BaseColor:          base,
		Seed:               seed,
		Roughness:          1.0,
		KnockdownIntensity: 0.8,
		KnockdownScale:     2.5,
		PittingDensity:     1.0,
		PittingSize:        1.0,
		AggregateDensity:   1.0,
		CrackDensity:       1.0,
		StainingIntensity:  1.0,
		NoiseScale:         1.0,
	}
}

// Validate rejects out-of-range values with a descriptive error.
func (p Params) Validate() error {
	if p.Width < MinDimension || p.Width > MaxDimension {
		return fmt.Errorf("width must be within [%d,%d], got %d", MinDimension, MaxDimension, p.Width)
	}
	if p.Height < MinDimension || p.Height > MaxDimension {
		return fmt.Errorf("height must be within [%d,%d], got %d", MinDimension, MaxDimension, p.Height)
	}
	if p.Roughness < 0 || p.Roughness > 2 {
		return fmt.Errorf("roughness must be within [0,2], got %g", p.Roughness)
	}
	if p.KnockdownIntensity < 0 || p.KnockdownIntensity > 1 {
		return fmt.Errorf("knockdown intensity must be within [0,1], got %g", p.KnockdownIntensity)
	}
	if p.KnockdownScale < 1 || p.KnockdownScale > 5 {
		return fmt.Errorf("knockdown scale must be within [1,5], got %g", p.KnockdownScale)
	}
	if p.PittingDensity < 0 || p.PittingDensity > 2 {
		return fmt.Errorf("pitting density must be within [0,2], got %g", p.PittingDensity)
	}
	if p.PittingSize < 0.5 || p.PittingSize > 2 {
		return fmt.Errorf("pitting size must be within [0.5,2], got %g", p.PittingSize)
	}
	if p.AggregateDensity < 0 || p.AggregateDensity > 2 {
		return fmt.Errorf("aggregate density must be within [0,2], got %g", p.AggregateDensity)
	}
	if p.CrackDensity < 0 || p.CrackDensity > 2 {
		return fmt.Errorf("crack density must be within [0,2], got %g", p.CrackDensity)
	}
	if p.StainingIntensity < 0 || p.StainingIntensity > 2 {
		return fmt.Errorf("staining intensity must be within [0,2], got %g", p.StainingIntensity)
	}
	if p.NoiseScale < 0.5 || p.NoiseScale > 2 {
		return fmt.Errorf("noise scale must be within [0.5,2], got %g", p.NoiseScale)
	}
	return nil
}
