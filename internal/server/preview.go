// Package server provides an HTTP preview server that renders textures on
// demand from query parameters.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/MeKo-Tech/concretegen/internal/export"
	"github.com/MeKo-Tech/concretegen/internal/palette"
	"github.com/MeKo-Tech/concretegen/internal/texture"
)

// Config configures the preview server.
type Config struct {
	Addr          string
	CacheControl  string
	MaxConcurrent int
	RenderTimeout time.Duration
	DefaultSize   int
	MaxSize       int
}

// Preview serves textures rendered on demand.
type Preview struct {
	logger *slog.Logger
	sem    chan struct{}
	cfg    Config

	activeRenders atomic.Int32
	totalRendered atomic.Int64
	totalFailed   atomic.Int64
}

// Status reports render counters for the status endpoint.
type Status struct {
	ActiveRenders int   `json:"active_renders"`
	TotalRendered int64 `json:"total_rendered"`
	TotalFailed   int64 `json:"total_failed"`
	MaxConcurrent int   `json:"max_concurrent"`
}

// New creates a preview server with defaults filled in.
func New(cfg Config, logger *slog.Logger) *Preview {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 2
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = time.Minute
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "no-store"
	}
	if cfg.DefaultSize <= 0 {
		cfg.DefaultSize = 512
	}
	if cfg.MaxSize <= 0 || cfg.MaxSize > texture.MaxDimension {
		cfg.MaxSize = 2048
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Preview{
		cfg:    cfg,
		logger: logger,
		sem:    make(chan struct{}, cfg.MaxConcurrent),
	}
}

// Handler returns the preview server's route table.
func (p *Preview) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", p.serveIndex)
	mux.HandleFunc("/healthz", p.serveHealth)
	mux.HandleFunc("/texture.png", p.serveTexture)
	mux.HandleFunc("/palette.json", p.servePalette)
	mux.HandleFunc("/styles.json", p.serveStyles)
	mux.HandleFunc("/status.json", p.serveStatus)
	return mux
}

// ListenAndServe runs the server until the context is cancelled.
func (p *Preview) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              p.cfg.Addr,
		Handler:           p.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	p.logger.Info("preview server listening", "addr", p.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (p *Preview) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

func (p *Preview) servePalette(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		Name string `json:"name"`
		Hex  string `json:"hex"`
	}
	out := make([]entry, 0, len(palette.Presets))
	for _, e := range palette.Presets {
		out = append(out, entry{Name: e.Name, Hex: e.Hex})
	}
	writeJSON(w, p.logger, out)
}

func (p *Preview) serveStyles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, p.logger, texture.PresetNames())
}

func (p *Preview) serveStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, p.logger, Status{
		ActiveRenders: int(p.activeRenders.Load()),
		TotalRendered: p.totalRendered.Load(),
		TotalFailed:   p.totalFailed.Load(),
		MaxConcurrent: p.cfg.MaxConcurrent,
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func (p *Preview) serveTexture(w http.ResponseWriter, r *http.Request) {
	params, err := p.paramsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), p.cfg.RenderTimeout)
	defer cancel()

	p.activeRenders.Add(1)
	start := time.Now()
	img, err := renderWithContext(ctx, params)
	p.activeRenders.Add(-1)

	if err != nil {
		p.totalFailed.Add(1)
		p.logger.Error("failed to render texture", "error", err)
		http.Error(w, fmt.Sprintf("failed to render texture: %v", err), http.StatusInternalServerError)
		return
	}
	p.totalRendered.Add(1)
	p.logger.Info("texture rendered",
		"size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"seed", params.Seed,
		"ms", time.Since(start).Milliseconds())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", p.cfg.CacheControl)
	if err := export.Encode(w, img, pngLevel(r)); err != nil {
		p.logger.Error("failed to write png", "error", err)
	}
}

// renderWithContext runs the render in a goroutine so a slow render cannot
// pin the handler past its deadline. The goroutine finishes on its own; the
// buffered channel keeps it from leaking.
func renderWithContext(ctx context.Context, params texture.Params) (*image.NRGBA, error) {
	type renderResult struct {
		img *image.NRGBA
		err error
	}
	ch := make(chan renderResult, 1)
	go func() {
		img, err := texture.Generate(params)
		ch <- renderResult{img: img, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.img, res.err
	}
}

func pngLevel(r *http.Request) png.CompressionLevel {
	level, err := export.ParseCompression(r.URL.Query().Get("compression"))
	if err != nil {
		return png.DefaultCompression
	}
	return level
}

// paramsFromQuery builds texture params from request query values, starting
// from an optional style preset and overriding with explicit knobs.
func (p *Preview) paramsFromQuery(r *http.Request) (texture.Params, error) {
	q := r.URL.Query()

	width, err := intParam(q.Get("width"), p.cfg.DefaultSize)
	if err != nil {
		return texture.Params{}, fmt.Errorf("invalid width: %w", err)
	}
	height, err := intParam(q.Get("height"), p.cfg.DefaultSize)
	if err != nil {
		return texture.Params{}, fmt.Errorf("invalid height: %w", err)
	}
	if width > p.cfg.MaxSize || height > p.cfg.MaxSize {
		return texture.Params{}, fmt.Errorf("requested size %dx%d exceeds limit %d", width, height, p.cfg.MaxSize)
	}

	base, err := palette.ParseHex(valueOr(q.Get("color"), palette.DefaultHex))
	if err != nil {
		return texture.Params{}, err
	}

	seed, err := int64Param(q.Get("seed"), 0)
	if err != nil {
		return texture.Params{}, fmt.Errorf("invalid seed: %w", err)
	}

	params := texture.DefaultParams(width, height, base, seed)

	if style := q.Get("style"); style != "" {
		preset, err := texture.Preset(style)
		if err != nil {
			return texture.Params{}, err
		}
		params = preset.Apply(params)
	}

	knobs := []struct {
		name string
		dst  *float64
	}{
		{"roughness", &params.Roughness},
		{"knockdown", &params.KnockdownIntensity},
		{"knockdown-scale", &params.KnockdownScale},
		{"pitting", &params.PittingDensity},
		{"pitting-size", &params.PittingSize},
		{"aggregate", &params.AggregateDensity},
		{"cracks", &params.CrackDensity},
		{"staining", &params.StainingIntensity},
		{"noise-scale", &params.NoiseScale},
	}
	for _, k := range knobs {
		if raw := q.Get(k.name); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return texture.Params{}, fmt.Errorf("invalid %s: %w", k.name, err)
			}
			*k.dst = v
		}
	}

	if err := params.Validate(); err != nil {
		return texture.Params{}, err
	}
	return params, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func int64Param(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
