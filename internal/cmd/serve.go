package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/concretegen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live texture preview over HTTP",
	Long: `Start an HTTP server that renders textures on demand from query
parameters and serves a small preview page for experimenting with colors,
seeds and surface parameters.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().Int("max-concurrent-renders", runtime.NumCPU(), "Max concurrent texture renders")
	serveCmd.Flags().Duration("render-timeout", time.Minute, "Timeout per texture render")
	serveCmd.Flags().String("cache-control", "no-store", "Cache-Control header for served textures")
	serveCmd.Flags().Int("default-size", 512, "Texture size when the request omits width/height")
	serveCmd.Flags().Int("max-size", 2048, "Largest width or height a request may ask for")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("serve.addr", "addr")
	mustBind("serve.max_concurrent_renders", "max-concurrent-renders")
	mustBind("serve.render_timeout", "render-timeout")
	mustBind("serve.cache_control", "cache-control")
	mustBind("serve.default_size", "default-size")
	mustBind("serve.max_size", "max-size")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	cfg := server.Config{
		Addr:          viper.GetString("serve.addr"),
		MaxConcurrent: viper.GetInt("serve.max_concurrent_renders"),
		RenderTimeout: viper.GetDuration("serve.render_timeout"),
		CacheControl:  viper.GetString("serve.cache_control"),
		DefaultSize:   viper.GetInt("serve.default_size"),
		MaxSize:       viper.GetInt("serve.max_size"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	preview := server.New(cfg, logger)
	if err := preview.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("preview server failed: %w", err)
	}
	return nil
}
