// Package worker provides a parallel texture generation worker pool.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/MeKo-Tech/concretegen/internal/texture"
)

// Renderer generates one texture and persists it, returning where it went.
type Renderer interface {
	Render(ctx context.Context, task Task) (path string, err error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, task Task) (string, error)

func (f RendererFunc) Render(ctx context.Context, task Task) (string, error) {
	return f(ctx, task)
}

// Task is a single texture to generate.
type Task struct {
	Name    string
	OutPath string
	Params  texture.Params
}

// Result is the outcome of one task.
type Result struct {
	Err     error
	Path    string
	Task    Task
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Renderer   Renderer
	OnProgress ProgressFunc
	Workers    int
}

// Pool runs texture generation tasks in parallel.
type Pool struct {
	renderer   Renderer
	onProgress ProgressFunc
	workers    int
}

// New creates a worker pool. A non-positive worker count falls back to a
// single worker.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		renderer:   cfg.Renderer,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and blocks until they complete or the context is
// cancelled. Tasks still queued after cancellation are reported with the
// context's error.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.work(ctx, taskCh, resultCh)
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})
	go func() {
		defer close(done)
		completed, failed := 0, 0
		for result := range resultCh {
			results = append(results, result)
			completed++
			if result.Err != nil {
				failed++
			}
			if p.onProgress != nil {
				p.onProgress(completed, len(tasks), failed)
			}
		}
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) work(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{Task: task, Err: ctx.Err()}
			continue
		default:
		}

		start := time.Now()
		path, err := p.renderer.Render(ctx, task)

		results <- Result{
			Task:    task,
			Path:    path,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
