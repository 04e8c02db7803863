package palette

import (
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects how colors are extracted from a reference image.
type Method int

const (
	MethodDominant Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseMethod converts a CLI flag value to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "dominant", "":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown extraction method %q: want dominant or kmeans", s)
}

// kmeansMaxSamples caps the pixel count fed to the clusterer.
const kmeansMaxSamples = 12000

// minLabSeparation drops near-duplicate dominant candidates.
const minLabSeparation = 0.04

// Extract pulls up to k representative colors from a reference image,
// darkest first. The kmeans path falls back to dominant-color extraction
// when clustering fails on degenerate input.
func Extract(img image.Image, k int, method Method) ([]colorful.Color, error) {
	if k <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", k)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("cannot extract palette from empty image")
	}

	var out []colorful.Color
	if method == MethodKMeans {
		out = extractKMeans(img, k)
	}
	if len(out) == 0 {
		out = extractDominant(img, k)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no opaque pixels to extract a palette from")
	}

	sortDarkToBright(out)
	return out, nil
}

// extractDominant ranks frequent colors and greedily keeps the strongest
// ones that are not near-duplicates in Lab space.
func extractDominant(img image.Image, k int) []colorful.Color {
	candidates := dominantcolor.FindWeight(img, max(24, k*6))

	out := make([]colorful.Color, 0, k)
	for _, cand := range candidates {
		col, ok := colorful.MakeColor(cand.RGBA)
		if !ok {
			continue
		}
		col = col.Clamped()

		dup := false
		for _, kept := range out {
			if labDistance(col, kept) < minLabSeparation {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		out = append(out, col)
		if len(out) == k {
			break
		}
	}
	return out
}

func extractKMeans(img image.Image, k int) []colorful.Color {
	b := img.Bounds()

	step := 1
	if area := b.Dx() * b.Dy(); area > kmeansMaxSamples {
		step = int(math.Sqrt(float64(area)/float64(kmeansMaxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, kmeansMaxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bb, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 65535.0,
				float64(g) / 65535.0,
				float64(bb) / 65535.0,
			})
		}
	}
	if len(dataset) < k {
		return nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Biggest clusters first so truncation keeps the dominant tones.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{
			R: c.Center[0],
			G: c.Center[1],
			B: c.Center[2],
		}.Clamped())
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func labDistance(a, b colorful.Color) float64 {
	la, aa, ba := a.Lab()
	lb, ab, bb := b.Lab()
	return math.Sqrt((la-lb)*(la-lb) + (aa-ab)*(aa-ab) + (ba-bb)*(ba-bb))
}

// sortDarkToBright orders colors by linear luminance so the darkest entry
// comes first.
func sortDarkToBright(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ya := luminance(a)
		yb := luminance(b)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
