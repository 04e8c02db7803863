package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/concretegen/internal/catalog"
	"github.com/MeKo-Tech/concretegen/internal/export"
	"github.com/MeKo-Tech/concretegen/internal/texture"
	"github.com/MeKo-Tech/concretegen/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate many texture variations in parallel",
	Long: `Generate a batch of concrete textures across seeds and styles using a
parallel worker pool. Textures are written as PNG files and can optionally
be recorded in a SQLite catalog for later listing and export.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addTextureFlags(batchCmd, "batch")

	batchCmd.Flags().String("seeds", "", "Comma-separated list of seeds (e.g. \"1,2,3\"); overrides --count")
	batchCmd.Flags().Int("count", 4, "Number of seeds to generate, starting at --seed")
	batchCmd.Flags().String("styles", "", "Comma-separated style presets to render per seed (empty renders flag params)")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", true, "Show progress bar")
	batchCmd.Flags().Bool("allow-failures", false, "Continue even if some textures fail")
	batchCmd.Flags().String("catalog", "", "SQLite catalog file to record generated textures in")
	batchCmd.Flags().String("name-prefix", "concrete", "Output file name prefix")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"batch.seeds", "seeds"},
		{"batch.count", "count"},
		{"batch.styles", "styles"},
		{"batch.workers", "workers"},
		{"batch.progress", "progress"},
		{"batch.allow_failures", "allow-failures"},
		{"batch.catalog", "catalog"},
		{"batch.name_prefix", "name-prefix"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, batchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	baseParams, err := buildParams(cmd, "batch")
	if err != nil {
		return err
	}

	seeds, err := batchSeeds(viper.GetString("batch.seeds"), viper.GetInt("batch.count"), baseParams.Seed)
	if err != nil {
		return err
	}

	styles, err := batchStyles(viper.GetString("batch.styles"))
	if err != nil {
		return err
	}

	workers := viper.GetInt("batch.workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	level, err := export.ParseCompression(viper.GetString("batch.png_compression"))
	if err != nil {
		return err
	}

	outputDir := viper.GetString("output-dir")
	prefix := viper.GetString("batch.name_prefix")

	var cat *catalog.Catalog
	if catalogPath := viper.GetString("batch.catalog"); catalogPath != "" {
		cat, err = catalog.Open(catalogPath)
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		defer cat.Close() // nolint:errcheck
	}

	tasks := buildBatchTasks(baseParams, seeds, styles, prefix, outputDir)

	logger.Info("Starting batch generation",
		"seeds", len(seeds),
		"styles", max(len(styles), 1),
		"textures", len(tasks),
		"workers", workers,
		"output_dir", outputDir,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	renderer := worker.RendererFunc(func(ctx context.Context, task worker.Task) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		img, err := texture.Generate(task.Params)
		if err != nil {
			return "", err
		}

		if err := export.WriteFile(task.OutPath, img, level); err != nil {
			return "", err
		}

		if cat != nil {
			var buf bytes.Buffer
			if err := export.Encode(&buf, img, level); err != nil {
				return "", err
			}
			if _, err := cat.Save(task.Name, task.Params, buf.Bytes()); err != nil {
				return "", fmt.Errorf("failed to catalog %s: %w", task.Name, err)
			}
		}
		return task.OutPath, nil
	})

	progress := worker.NewProgress(len(tasks), viper.GetBool("batch.progress"))
	pool := worker.New(worker.Config{
		Workers:    workers,
		Renderer:   renderer,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Texture generation failed", "name", r.Task.Name, "error", r.Err)
		}
	}

	logger.Info(progress.Summary())

	if failedCount > 0 && !viper.GetBool("batch.allow_failures") {
		return fmt.Errorf("%d textures failed to generate", failedCount)
	}
	return nil
}

// buildBatchTasks expands seeds and styles into one task per combination.
// An empty style list renders the base params unchanged.
func buildBatchTasks(base texture.Params, seeds []int64, styles []string, prefix, outputDir string) []worker.Task {
	if len(styles) == 0 {
		styles = []string{""}
	}

	tasks := make([]worker.Task, 0, len(seeds)*len(styles))
	for _, seed := range seeds {
		for _, style := range styles {
			params := base
			params.Seed = seed
			name := fmt.Sprintf("%s_seed%d", prefix, seed)
			if style != "" {
				preset, err := texture.Preset(style)
				if err == nil {
					params = preset.Apply(params)
				}
				name = fmt.Sprintf("%s_%s_seed%d", prefix, style, seed)
			}
			tasks = append(tasks, worker.Task{
				Name:    name,
				OutPath: filepath.Join(outputDir, name+".png"),
				Params:  params,
			})
		}
	}
	return tasks
}

// batchSeeds parses an explicit seed list, or derives count sequential
// seeds starting at start.
func batchSeeds(list string, count int, start int64) ([]int64, error) {
	if list != "" {
		parts := strings.Split(list, ",")
		seeds := make([]int64, 0, len(parts))
		for _, part := range parts {
			seed, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seed %q: %w", part, err)
			}
			seeds = append(seeds, seed)
		}
		return seeds, nil
	}

	if count <= 0 {
		return nil, fmt.Errorf("--count must be positive, got %d", count)
	}
	seeds := make([]int64, count)
	for i := range seeds {
		seeds[i] = start + int64(i)
	}
	return seeds, nil
}

// batchStyles validates the style list up front so bad names fail fast
// instead of mid-batch.
func batchStyles(list string) ([]string, error) {
	if list == "" {
		return nil, nil
	}

	parts := strings.Split(list, ",")
	styles := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, err := texture.Preset(name); err != nil {
			return nil, err
		}
		styles = append(styles, name)
	}
	return styles, nil
}
