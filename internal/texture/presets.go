package texture

import (
	"fmt"
	"sort"
)

// StylePreset is a named bundle of knob values. Presets leave geometry,
// color, and seed untouched.
type StylePreset struct {
	Name               string
	Roughness          float64
	KnockdownIntensity float64
	KnockdownScale     float64
	PittingDensity     float64
	PittingSize        float64
	AggregateDensity   float64
	CrackDensity       float64
	StainingIntensity  float64
	NoiseScale         float64
}

var stylePresets = map[string]StylePreset{
	"light-smooth": {
		Name:               "light-smooth",
		Roughness:          0.5,
		KnockdownIntensity: 0.5,
		KnockdownScale:     3.0,
		PittingDensity:     0.5,
		PittingSize:        0.8,
		AggregateDensity:   0.5,
		CrackDensity:       0.3,
		StainingIntensity:  0.5,
		NoiseScale:         1.2,
	},
	"heavy-knockdown": {
		Name:               "heavy-knockdown",
		Roughness:          1.5,
		KnockdownIntensity: 1.0,
		KnockdownScale:     2.0,
		PittingDensity:     1.2,
		PittingSize:        1.3,
		AggregateDensity:   1.5,
		CrackDensity:       1.0,
		StainingIntensity:  1.2,
		NoiseScale:         0.8,
	},
	"rough-industrial": {
		Name:               "rough-industrial",
		Roughness:          2.0,
		KnockdownIntensity: 0.9,
		KnockdownScale:     2.5,
		PittingDensity:     1.5,
		PittingSize:        1.5,
		AggregateDensity:   2.0,
		CrackDensity:       1.5,
		StainingIntensity:  1.5,
		NoiseScale:         1.0,
	},
	"weathered": {
		Name:               "weathered",
		Roughness:          1.2,
		KnockdownIntensity: 0.7,
		KnockdownScale:     3.5,
		PittingDensity:     1.8,
		PittingSize:        1.8,
		AggregateDensity:   1.0,
		CrackDensity:       2.0,
		StainingIntensity:  2.0,
		NoiseScale:         1.5,
	},
}

// PresetNames returns the available style preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(stylePresets))
	for name := range stylePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset looks up a style preset by name.
func Preset(name string) (StylePreset, error) {
	preset, ok := stylePresets[name]
	if !ok {
		return StylePreset{}, fmt.Errorf("unknown style preset %q (available: %v)", name, PresetNames())
	}
	return preset, nil
}

// Apply copies the preset's knob values onto p and returns the result.
func (s StylePreset) Apply(p Params) Params {
	p.Roughness = s.Roughness
	p.KnockdownIntensity = s.KnockdownIntensity
	p.KnockdownScale = s.KnockdownScale
	p.PittingDensity = s.PittingDensity
	p.PittingSize = s.PittingSize
	p.AggregateDensity = s.AggregateDensity
	p.CrackDensity = s.CrackDensity
	p.StainingIntensity = s.StainingIntensity
	p.NoiseScale = s.NoiseScale
	return p
}
