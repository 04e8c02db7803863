package texture

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/concretegen/internal/canvas"
)

func midGrayCanvas(t *testing.T, w, h int) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(w, h)
	require.NoError(t, err)
	c.Fill(0.5, 0.5, 0.5)
	return c
}

func countDarkened(c *canvas.Canvas) int {
	n := 0
	for i := range c.R {
		if c.R[i] < 0.5 {
			n++
		}
	}
	return n
}

func countChanged(c *canvas.Canvas) int {
	n := 0
	for i := range c.R {
		if c.R[i] != 0.5 {
			n++
		}
	}
	return n
}

// Fresh sub-stream per call means a higher density draws the same features
// plus extra ones, so the affected pixel count never shrinks.
func TestPittingDensityMonotonic(t *testing.T) {
	p := DefaultParams(128, 128, testBase, 9)

	prev := -1
	for _, density := range []float64{0, 0.5, 1.0, 2.0} {
		p.PittingDensity = density
		c := midGrayCanvas(t, p.Width, p.Height)
		rng := rand.New(rand.NewSource(p.Seed + seedPitting))
		require.NoError(t, applyPitting(c, p, rng))

		got := countDarkened(c)
		require.GreaterOrEqual(t, got, prev, "density %v must not reduce darkened pixels", density)
		prev = got
	}
	require.Positive(t, prev, "density 2.0 must darken some pixels")
}

func TestAggregateDensityMonotonic(t *testing.T) {
	p := DefaultParams(128, 128, testBase, 9)

	prev := -1
	for _, density := range []float64{0, 0.5, 1.0, 2.0} {
		p.AggregateDensity = density
		c := midGrayCanvas(t, p.Width, p.Height)
		rng := rand.New(rand.NewSource(p.Seed + seedAggregate))
		require.NoError(t, applyAggregate(c, p, rng))

		got := countChanged(c)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
	require.Positive(t, prev)
}

func TestCrackDensityMonotonic(t *testing.T) {
	p := DefaultParams(128, 128, testBase, 9)

	prev := -1
	for _, density := range []float64{0, 0.5, 1.0, 2.0} {
		p.CrackDensity = density
		c := midGrayCanvas(t, p.Width, p.Height)
		rng := rand.New(rand.NewSource(p.Seed + seedCracks))
		require.NoError(t, applyCracks(c, p, rng))

		got := countDarkened(c)
		require.GreaterOrEqual(t, got, prev, "density %v must not reduce darkened pixels", density)
		prev = got
	}
	require.Positive(t, prev, "density 2.0 must draw some cracks")
}

func TestZeroCrackDensityDrawsNothing(t *testing.T) {
	p := DefaultParams(128, 128, testBase, 9)
	p.CrackDensity = 0

	c := midGrayCanvas(t, p.Width, p.Height)
	rng := rand.New(rand.NewSource(p.Seed + seedCracks))
	require.NoError(t, applyCracks(c, p, rng))

	require.Zero(t, countChanged(c))
}

func TestCracksDarkenOnly(t *testing.T) {
	p := DefaultParams(128, 128, testBase, 9)
	p.CrackDensity = 2

	c := midGrayCanvas(t, p.Width, p.Height)
	rng := rand.New(rand.NewSource(p.Seed + seedCracks))
	require.NoError(t, applyCracks(c, p, rng))

	require.Positive(t, countDarkened(c))
	for i := range c.R {
		require.LessOrEqual(t, c.R[i], 0.5)
	}
}

// Feature counts scale with pixel area so a 512px texture carries the same
// feature density per unit area as a 256px one.
func TestScaledCountTracksArea(t *testing.T) {
	small := scaledCount(300, 1.0, 256, 256)
	large := scaledCount(300, 1.0, 512, 512)

	require.Equal(t, 75, small)
	require.Equal(t, 300, large)
	require.Equal(t, 4*small, large)

	require.Equal(t, 600, scaledCount(300, 2.0, 512, 512))
	require.Zero(t, scaledCount(300, 0, 512, 512))
}

func TestPittingCoverageScalesWithResolution(t *testing.T) {
	p := DefaultParams(256, 256, testBase, 21)

	small := midGrayCanvas(t, 256, 256)
	rng := rand.New(rand.NewSource(p.Seed + seedPitting))
	require.NoError(t, applyPitting(small, p, rng))

	q := p
	q.Width, q.Height = 512, 512
	large := midGrayCanvas(t, 512, 512)
	rng = rand.New(rand.NewSource(q.Seed + seedPitting))
	require.NoError(t, applyPitting(large, q, rng))

	smallN := countDarkened(small)
	largeN := countDarkened(large)
	require.Positive(t, smallN)

	// Four times the area should carry roughly four times the pit pixels.
	ratio := float64(largeN) / float64(smallN)
	require.Greater(t, ratio, 2.0)
	require.Less(t, ratio, 8.0)
}

func TestStippleAffectsBlocks(t *testing.T) {
	p := DefaultParams(64, 64, testBase, 5)
	p.Roughness = 1

	c := midGrayCanvas(t, p.Width, p.Height)
	rng := rand.New(rand.NewSource(p.Seed + seedStipple))
	require.NoError(t, applyStipple(c, p, rng))

	require.Positive(t, countChanged(c))
	for i := range c.R {
		require.InDelta(t, 0.5, c.R[i], stippleAmplitude+1e-9)
	}
}

func TestKnockdownAmplitudeBounded(t *testing.T) {
	p := DefaultParams(96, 96, testBase, 11)
	p.KnockdownIntensity = 1
	p.KnockdownScale = 2.5

	c := midGrayCanvas(t, p.Width, p.Height)
	rng := rand.New(rand.NewSource(p.Seed + seedKnockdown))
	require.NoError(t, applyKnockdown(c, p, rng))

	require.Positive(t, countChanged(c))
	for i := range c.R {
		require.InDelta(t, 0.5, c.R[i], knockdownAmplitude+1e-9)
	}
}

func TestDustOnlyLightens(t *testing.T) {
	p := DefaultParams(128, 128, testBase, 13)

	c := midGrayCanvas(t, p.Width, p.Height)
	rng := rand.New(rand.NewSource(p.Seed + seedDust))
	require.NoError(t, applyDust(c, p, rng))

	for i := range c.R {
		require.GreaterOrEqual(t, c.R[i], 0.5)
	}
	require.Positive(t, countChanged(c))
}

func TestStainingDarkensMaskedRegion(t *testing.T) {
	p := DefaultParams(128, 128, testBase, 17)
	p.StainingIntensity = 2

	c := midGrayCanvas(t, p.Width, p.Height)
	rng := rand.New(rand.NewSource(p.Seed + seedStaining))
	require.NoError(t, applyStaining(c, p, rng))

	for i := range c.R {
		if c.R[i] != 0.5 {
			require.InDelta(t, 0.5*stainDarken, c.R[i], 1e-9)
		}
	}
}
