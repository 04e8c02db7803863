package texture

import (
	"bytes"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

var testBase = color.NRGBA{R: 140, G: 134, B: 128, A: 255}

func TestGenerateDeterminism(t *testing.T) {
	p := DefaultParams(96, 96, testBase, 42)

	a, err := Generate(p)
	require.NoError(t, err)
	b, err := Generate(p)
	require.NoError(t, err)

	require.True(t, bytes.Equal(a.Pix, b.Pix), "same seed and params must produce byte-identical buffers")
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	p := DefaultParams(64, 64, testBase, 1)
	q := p
	q.Seed = 2

	a, err := Generate(p)
	require.NoError(t, err)
	b, err := Generate(q)
	require.NoError(t, err)

	require.False(t, bytes.Equal(a.Pix, b.Pix), "different seeds should produce different textures")
}

func TestGenerateOnePixel(t *testing.T) {
	p := DefaultParams(1, 1, testBase, 0)

	img, err := Generate(p)
	require.NoError(t, err)
	require.Equal(t, 1, img.Bounds().Dx())
	require.Equal(t, 1, img.Bounds().Dy())
	require.EqualValues(t, 255, img.NRGBAAt(0, 0).A)
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"zero height", func(p *Params) { p.Height = 0 }},
		{"oversized width", func(p *Params) { p.Width = MaxDimension + 1 }},
		{"negative roughness", func(p *Params) { p.Roughness = -0.1 }},
		{"roughness too large", func(p *Params) { p.Roughness = 2.1 }},
		{"knockdown intensity too large", func(p *Params) { p.KnockdownIntensity = 1.5 }},
		{"knockdown scale too small", func(p *Params) { p.KnockdownScale = 0.5 }},
		{"pitting size too small", func(p *Params) { p.PittingSize = 0.1 }},
		{"negative crack density", func(p *Params) { p.CrackDensity = -1 }},
		{"noise scale too small", func(p *Params) { p.NoiseScale = 0.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams(64, 64, testBase, 0)
			tc.mutate(&p)
			_, err := Generate(p)
			require.Error(t, err)
		})
	}
}

// renderSkipping runs the pipeline like Render but leaves out the named
// layers. Layer sub-streams make this equivalent to the layer being a no-op.
func renderSkipping(t *testing.T, p Params, skip ...string) *canvas.Canvas {
	t.Helper()
	require.NoError(t, p.Validate())

	c, err := canvas.New(p.Width, p.Height)
	require.NoError(t, err)

	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipped[name] = true
	}

	for _, layer := range Layers() {
		if skipped[layer.Name] {
			continue
		}
		rng := rand.New(rand.NewSource(p.Seed + layer.seedOffset))
		require.NoError(t, layer.apply(c, p, rng))
		c.Clamp()
	}
	return c
}

func TestZeroKnockdownIntensityIsNoOp(t *testing.T) {
	p := DefaultParams(64, 64, testBase, 7)
	p.KnockdownIntensity = 0

	full, err := Render(p)
	require.NoError(t, err)
	without := renderSkipping(t, p, "knockdown")

	require.True(t, full.Equal(without), "knockdown at intensity 0 must match a pipeline without the layer")
}

func TestZeroStainingIntensityIsNoOp(t *testing.T) {
	p := DefaultParams(64, 64, testBase, 7)
	p.StainingIntensity = 0

	full, err := Render(p)
	require.NoError(t, err)
	without := renderSkipping(t, p, "staining")

	require.True(t, full.Equal(without))
}

func TestZeroRoughnessIsNoOp(t *testing.T) {
	p := DefaultParams(64, 64, testBase, 7)
	p.Roughness = 0

	full, err := Render(p)
	require.NoError(t, err)
	without := renderSkipping(t, p, "stipple", "fine-grain")

	require.True(t, full.Equal(without))
}

func TestRenderChannelsStayClamped(t *testing.T) {
	p := DefaultParams(64, 64, color.NRGBA{R: 250, G: 250, B: 250, A: 255}, 3)
	p.Roughness = 2
	p.KnockdownIntensity = 1
	p.PittingDensity = 2
	p.PittingSize = 2
	p.AggregateDensity = 2
	p.CrackDensity = 2
	p.StainingIntensity = 2

	c, err := Render(p)
	require.NoError(t, err)

	for i := range c.R {
		require.GreaterOrEqual(t, c.R[i], 0.0)
		require.LessOrEqual(t, c.R[i], 1.0)
		require.GreaterOrEqual(t, c.G[i], 0.0)
		require.LessOrEqual(t, c.G[i], 1.0)
		require.GreaterOrEqual(t, c.B[i], 0.0)
		require.LessOrEqual(t, c.B[i], 1.0)
	}
}

func TestLayerOrder(t *testing.T) {
	want := []string{
		"base", "tonal-noise", "knockdown", "stipple", "fine-grain",
		"pitting", "aggregate", "staining", "cracks", "dust",
	}
	layers := Layers()
	require.Len(t, layers, len(want))
	for i, layer := range layers {
		require.Equal(t, want[i], layer.Name)
	}
}

func TestPresets(t *testing.T) {
	names := PresetNames()
	require.NotEmpty(t, names)

	for _, name := range names {
		preset, err := Preset(name)
		require.NoError(t, err)

		p := preset.Apply(DefaultParams(64, 64, testBase, 0))
		require.NoError(t, p.Validate(), "preset %s must produce valid params", name)
	}

	_, err := Preset("no-such-style")
	require.Error(t, err)
}
