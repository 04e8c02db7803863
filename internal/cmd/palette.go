package cmd

import (
	"fmt"
	"image"
	"os"

	// Register decoders for reference images.
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/concretegen/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Work with concrete color palettes",
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in concrete colors",
	RunE:  runPaletteList,
}

var paletteExtractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract representative colors from a reference image",
	Long: `Extract a small palette of representative colors from a reference photo
of a concrete surface. Extracted colors are printed darkest first and can
be fed back into generate via --color.`,
	Args: cobra.ExactArgs(1),
	RunE: runPaletteExtract,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteExtractCmd)

	paletteExtractCmd.Flags().IntP("colors", "n", 5, "Number of colors to extract")
	paletteExtractCmd.Flags().String("method", "dominant", "Extraction method (dominant, kmeans)")

	if err := viper.BindPFlag("palette.colors", paletteExtractCmd.Flags().Lookup("colors")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
	if err := viper.BindPFlag("palette.method", paletteExtractCmd.Flags().Lookup("method")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func runPaletteList(cmd *cobra.Command, args []string) error {
	for i, entry := range palette.Presets {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-15s %s\n", i+1, entry.Name, entry.Hex)
	}
	return nil
}

func runPaletteExtract(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	method, err := palette.ParseMethod(viper.GetString("palette.method"))
	if err != nil {
		return err
	}
	count := viper.GetInt("palette.colors")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close() // nolint:errcheck

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	logger.Info("Extracting palette", "image", args[0], "format", format, "colors", count, "method", method.String())

	colors, err := palette.Extract(img, count, method)
	if err != nil {
		return err
	}

	for i, c := range colors {
		r, g, b := c.RGB255()
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. #%02X%02X%02X\n", i+1, r, g, b)
	}
	return nil
}
