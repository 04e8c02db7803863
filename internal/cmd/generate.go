package cmd

import (
	"fmt"
	"image/color"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/concretegen/internal/export"
	"github.com/MeKo-Tech/concretegen/internal/palette"
	"github.com/MeKo-Tech/concretegen/internal/texture"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a concrete texture",
	Long:  `Generate a single concrete texture PNG from a base color, seed and surface parameters.`,
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addTextureFlags(generateCmd, "generate")

	generateCmd.Flags().StringP("output", "o", "concrete_texture.png", "Output PNG path")
	generateCmd.Flags().String("resize", "", "Resample output to this size (e.g. \"512\" or \"1024x512\")")

	mustBindFlag(generateCmd, "generate.output", "output")
	mustBindFlag(generateCmd, "generate.resize", "resize")
}

// addTextureFlags registers the shared texture parameter flags on cmd,
// bound to ns-prefixed viper keys.
func addTextureFlags(cmd *cobra.Command, ns string) {
	cmd.Flags().StringP("color", "c", palette.DefaultHex, "Base color as hex (e.g. \"#8C8680\") or a palette name (e.g. \"medium-grey\")")
	cmd.Flags().Bool("random-color", false, "Pick a random color from the built-in palette")
	cmd.Flags().Int("width", 1024, "Texture width in pixels")
	cmd.Flags().Int("height", 1024, "Texture height in pixels")
	cmd.Flags().Int64("seed", 0, "Deterministic seed (same seed and params reproduce the texture)")
	cmd.Flags().String("style", "", "Style preset (light-smooth, heavy-knockdown, rough-industrial, weathered)")

	cmd.Flags().Float64("roughness", 1.0, "Surface grain strength (0-2)")
	cmd.Flags().Float64("knockdown", 0.8, "Trowel knockdown intensity (0-1)")
	cmd.Flags().Float64("knockdown-scale", 2.5, "Knockdown feature size (1-5)")
	cmd.Flags().Float64("pitting", 1.0, "Pinhole density (0-2)")
	cmd.Flags().Float64("pitting-size", 1.0, "Pinhole size multiplier (0.5-2)")
	cmd.Flags().Float64("aggregate", 1.0, "Embedded stone speckle density (0-2)")
	cmd.Flags().Float64("cracks", 1.0, "Hairline crack density (0-2)")
	cmd.Flags().Float64("staining", 1.0, "Water stain intensity (0-2)")
	cmd.Flags().Float64("noise-scale", 1.0, "Tonal variation feature size (0.5-2)")

	cmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"color", "color"},
		{"random_color", "random-color"},
		{"width", "width"},
		{"height", "height"},
		{"seed", "seed"},
		{"style", "style"},
		{"roughness", "roughness"},
		{"knockdown", "knockdown"},
		{"knockdown_scale", "knockdown-scale"},
		{"pitting", "pitting"},
		{"pitting_size", "pitting-size"},
		{"aggregate", "aggregate"},
		{"cracks", "cracks"},
		{"staining", "staining"},
		{"noise_scale", "noise-scale"},
		{"png_compression", "png-compression"},
	}

	for _, bf := range bindFlags {
		mustBindFlag(cmd, ns+"."+bf.key, bf.flag)
	}
}

func mustBindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	params, err := buildParams(cmd, "generate")
	if err != nil {
		return err
	}

	outPath := viper.GetString("generate.output")
	if dir := viper.GetString("output-dir"); dir != "" && dir != "." && !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dir, outPath)
	}

	level, err := export.ParseCompression(viper.GetString("generate.png_compression"))
	if err != nil {
		return err
	}

	logger.Info("Generating texture",
		"size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"color", palette.FormatHex(params.BaseColor),
		"seed", params.Seed,
		"output", outPath,
	)

	img, err := texture.Generate(params)
	if err != nil {
		return fmt.Errorf("failed to generate texture: %w", err)
	}

	if resize := viper.GetString("generate.resize"); resize != "" {
		w, h, err := parseSize(resize)
		if err != nil {
			return fmt.Errorf("invalid resize: %w", err)
		}
		resized, err := export.Resize(img, w, h)
		if err != nil {
			return err
		}
		if err := export.WriteFile(outPath, resized, level); err != nil {
			return err
		}
		logger.Info("Texture written", "path", outPath, "resized_to", fmt.Sprintf("%dx%d", w, h))
		return nil
	}

	if err := export.WriteFile(outPath, img, level); err != nil {
		return err
	}
	logger.Info("Texture written", "path", outPath)
	return nil
}

// buildParams assembles texture params from the ns-prefixed config values.
// A style preset is applied first; knob flags the user set explicitly
// override the preset.
func buildParams(cmd *cobra.Command, ns string) (texture.Params, error) {
	base, err := resolveColor(
		viper.GetString(ns+".color"),
		viper.GetBool(ns+".random_color"),
		viper.GetInt64(ns+".seed"),
	)
	if err != nil {
		return texture.Params{}, err
	}

	params := texture.DefaultParams(
		viper.GetInt(ns+".width"),
		viper.GetInt(ns+".height"),
		base,
		viper.GetInt64(ns+".seed"),
	)

	styled := false
	if style := viper.GetString(ns + ".style"); style != "" {
		preset, err := texture.Preset(style)
		if err != nil {
			return texture.Params{}, err
		}
		params = preset.Apply(params)
		styled = true
	}

	knobs := []struct {
		flag string
		key  string
		dst  *float64
	}{
		{"roughness", ns + ".roughness", &params.Roughness},
		{"knockdown", ns + ".knockdown", &params.KnockdownIntensity},
		{"knockdown-scale", ns + ".knockdown_scale", &params.KnockdownScale},
		{"pitting", ns + ".pitting", &params.PittingDensity},
		{"pitting-size", ns + ".pitting_size", &params.PittingSize},
		{"aggregate", ns + ".aggregate", &params.AggregateDensity},
		{"cracks", ns + ".cracks", &params.CrackDensity},
		{"staining", ns + ".staining", &params.StainingIntensity},
		{"noise-scale", ns + ".noise_scale", &params.NoiseScale},
	}
	for _, k := range knobs {
		// Without a style every knob comes from config; with a style only
		// explicitly set flags override the preset.
		if !styled || cmd.Flags().Changed(k.flag) {
			*k.dst = viper.GetFloat64(k.key)
		}
	}

	if err := params.Validate(); err != nil {
		return texture.Params{}, err
	}
	return params, nil
}

// resolveColor turns the --color value into a concrete base color. Palette
// names are accepted alongside hex codes. Random picks are seeded so runs
// stay reproducible.
func resolveColor(value string, random bool, seed int64) (color.NRGBA, error) {
	if random {
		rng := rand.New(rand.NewSource(seed))
		return palette.Presets[rng.Intn(len(palette.Presets))].Color(), nil
	}

	if strings.HasPrefix(value, "#") {
		return palette.ParseHex(value)
	}
	if entry, err := palette.Lookup(value); err == nil {
		return entry.Color(), nil
	}
	return palette.ParseHex(value)
}

// parseSize parses "512" as a square or "1024x512" as width by height.
func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width %q: %w", parts[0], err)
	}
	h := w
	if len(parts) == 2 {
		h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid height %q: %w", parts[1], err)
		}
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}
