package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	return img
}

func TestParseCompression(t *testing.T) {
	cases := map[string]png.CompressionLevel{
		"":        png.DefaultCompression,
		"default": png.DefaultCompression,
		"speed":   png.BestSpeed,
		"best":    png.BestCompression,
		"none":    png.NoCompression,
	}
	for in, want := range cases {
		got, err := ParseCompression(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseCompression("max")
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	src := testImage(16, 16)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src, png.DefaultCompression))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "texture.png")
	require.NoError(t, WriteFile(path, testImage(8, 8), png.BestSpeed))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() // nolint:errcheck

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
}

func TestResize(t *testing.T) {
	src := testImage(32, 32)

	dst, err := Resize(src, 16, 24)
	require.NoError(t, err)
	assert.Equal(t, 16, dst.Bounds().Dx())
	assert.Equal(t, 24, dst.Bounds().Dy())

	same, err := Resize(src, 32, 32)
	require.NoError(t, err)
	assert.Same(t, image.Image(src), same)

	_, err = Resize(src, 0, 16)
	assert.Error(t, err)
}
