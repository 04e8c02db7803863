// Package export writes rendered textures to disk.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// ParseCompression maps a CLI flag value to a png compression level.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch s {
	case "default", "":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	}
	return 0, fmt.Errorf("unknown png compression %q: want default, speed, best, or none", s)
}

// Encode writes img as PNG at the given compression level.
func Encode(w io.Writer, img image.Image, level png.CompressionLevel) error {
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// WriteFile writes img to path as PNG, creating parent directories as
// needed.
func WriteFile(path string, img image.Image, level png.CompressionLevel) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close() // nolint:errcheck

	if err := Encode(f, img, level); err != nil {
		return err
	}
	return f.Close()
}

// Resize scales img to the target size with Catmull-Rom interpolation.
// The source is returned unchanged when it already matches.
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize target must be positive, got %dx%d", width, height)
	}
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst, nil
}
