package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 30

// Progress renders a single-line batch progress bar on stderr. All counts
// come in through Update, so it can serve directly as a Pool progress
// callback.
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	mu        sync.Mutex
	enabled   bool
}

// NewProgress creates a progress tracker for total tasks. A disabled
// tracker still records counts, so Summary works either way.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// snapshot is a consistent view of the counters, taken under the lock so
// rendering never mixes counts from two updates.
type snapshot struct {
	completed int
	total     int
	failed    int
	elapsed   time.Duration
}

func (s snapshot) rate() float64 {
	if s.elapsed.Seconds() <= 0 {
		return 0
	}
	return float64(s.completed) / s.elapsed.Seconds()
}

func (s snapshot) eta() time.Duration {
	rate := s.rate()
	if rate <= 0 || s.completed >= s.total {
		return 0
	}
	return time.Duration(float64(s.total-s.completed)/rate) * time.Second
}

func (p *Progress) snapshot() snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshot{
		completed: p.completed,
		total:     p.total,
		failed:    p.failed,
		elapsed:   time.Since(p.startTime),
	}
}

// Update records the completion of a task.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback returns a ProgressFunc suitable for Pool's Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// Print writes the current progress line.
func (p *Progress) Print() {
	s := p.snapshot()

	pct := 0.0
	if s.total > 0 {
		pct = 100 * float64(s.completed) / float64(s.total)
	}

	var line strings.Builder
	fmt.Fprintf(&line, "\r[%s] %3.0f%% %d/%d textures",
		renderBar(s.completed, s.total, progressBarWidth), pct, s.completed, s.total)
	if s.failed > 0 {
		fmt.Fprintf(&line, " (%d failed)", s.failed)
	}
	fmt.Fprintf(&line, " - %.1f textures/sec", s.rate())
	if eta := s.eta(); eta > 0 {
		fmt.Fprintf(&line, " - ETA: %s", formatDuration(eta))
	}
	if s.completed == s.total {
		fmt.Fprintf(&line, " - Done in %s", formatDuration(s.elapsed))
	}

	// Trailing spaces clear leftovers from a longer previous line.
	line.WriteString(strings.Repeat(" ", 10))

	fmt.Fprint(p.output, line.String())
}

// Done prints the final progress line and a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary returns a one-line summary of the completed work.
func (p *Progress) Summary() string {
	s := p.snapshot()
	return fmt.Sprintf("Generated %d/%d textures (%d failed) in %s (%.1f textures/sec)",
		s.completed-s.failed, s.total, s.failed, formatDuration(s.elapsed), s.rate())
}

func renderBar(completed, total, width int) string {
	filled := 0
	if total > 0 {
		filled = completed * width / total
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
