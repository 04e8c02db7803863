// Package palette provides the preset concrete color palette and ways to
// build custom palettes from reference imagery.
package palette

import (
	"fmt"
	"image/color"
	"strings"
)

// Entry is a named base color available to the generator.
type Entry struct {
	Name string
	Hex  string
}

// Presets lists the built-in concrete tones, ordered roughly light to dark
// within each temperature group.
var Presets = []Entry{
	{Name: "Light Grey", Hex: "#C8C4BC"},
	{Name: "Warm Grey", Hex: "#B5A898"},
	{Name: "Cool Grey", Hex: "#A8ACB0"},
	{Name: "Beige Concrete", Hex: "#D4CFC5"},
	{Name: "Medium Grey", Hex: "#8C8680"},
	{Name: "Dark Charcoal", Hex: "#5A5A5A"},
	{Name: "Cement Grey", Hex: "#9B9B9B"},
	{Name: "Stone Grey", Hex: "#7D7D7D"},
	{Name: "Warm Beige", Hex: "#BFB5A8"},
	{Name: "Dark Grey", Hex: "#6B6B6B"},
	{Name: "Light Cement", Hex: "#DCDCDC"},
	{Name: "Graphite", Hex: "#4A4A4A"},
}

// DefaultHex is the base color used when none is given.
const DefaultHex = "#8C8680"

// Color returns the entry's color. Preset hex strings are known-good, so a
// parse failure here is a programming error.
func (e Entry) Color() color.NRGBA {
	c, err := ParseHex(e.Hex)
	if err != nil {
		panic(fmt.Sprintf("invalid preset color %q: %v", e.Hex, err))
	}
	return c
}

// Lookup finds a preset by name, ignoring case and treating dashes and
// spaces as equivalent, so "medium-grey" matches "Medium Grey".
func Lookup(name string) (Entry, error) {
	want := normalizeName(name)
	for _, e := range Presets {
		if normalizeName(e.Name) == want {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("unknown palette color %q", name)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", " "))
}

// ParseHex parses a #RRGGBB color string. The leading # is optional.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want #RRGGBB", s)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(h[2*i])
		lo, ok2 := hexNibble(h[2*i+1])
		if !ok1 || !ok2 {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want #RRGGBB", s)
		}
		rgb[i] = hi<<4 | lo
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// FormatHex renders a color as an uppercase #RRGGBB string.
func FormatHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
