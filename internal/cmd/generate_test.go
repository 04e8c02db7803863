package cmd

import (
	"image/color"
	"testing"

	"github.com/MeKo-Tech/concretegen/internal/texture"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantW   int
		wantH   int
		wantErr bool
	}{
		{
			name:  "square shorthand",
			input: "512",
			wantW: 512,
			wantH: 512,
		},
		{
			name:  "width by height",
			input: "1024x512",
			wantW: 1024,
			wantH: 512,
		},
		{
			name:  "uppercase separator",
			input: "256X128",
			wantW: 256,
			wantH: 128,
		},
		{
			name:  "with spaces",
			input: " 640 x 480 ",
			wantW: 640,
			wantH: 480,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "zero width",
			input:   "0x100",
			wantErr: true,
		},
		{
			name:    "negative height",
			input:   "100x-5",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "abcx100",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := parseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSize(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseSize(%q) unexpected error: %v", tt.input, err)
				return
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.input, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResolveColor(t *testing.T) {
	c, err := resolveColor("#5A5A5A", false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 90 || c.G != 90 || c.B != 90 {
		t.Errorf("resolveColor hex = %v, want 90/90/90", c)
	}

	c, err = resolveColor("medium-grey", false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 140 || c.G != 134 || c.B != 128 {
		t.Errorf("resolveColor name = %v, want 140/134/128", c)
	}

	if _, err := resolveColor("not-a-color", false, 0); err == nil {
		t.Error("expected error for unknown color")
	}

	// Random picks must be reproducible for a given seed.
	a, err := resolveColor("", true, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := resolveColor("", true, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("random color not reproducible: %v vs %v", a, b)
	}
}

func TestBatchSeeds(t *testing.T) {
	seeds, err := batchSeeds("1, 2, 3", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 3 || seeds[0] != 1 || seeds[2] != 3 {
		t.Errorf("batchSeeds list = %v, want [1 2 3]", seeds)
	}

	seeds, err = batchSeeds("", 4, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 4 || seeds[0] != 100 || seeds[3] != 103 {
		t.Errorf("batchSeeds count = %v, want [100..103]", seeds)
	}

	if _, err := batchSeeds("1,x,3", 0, 0); err == nil {
		t.Error("expected error for bad seed list")
	}
	if _, err := batchSeeds("", 0, 0); err == nil {
		t.Error("expected error for non-positive count")
	}
}

func TestBatchStyles(t *testing.T) {
	styles, err := batchStyles("weathered, rough-industrial")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(styles) != 2 || styles[0] != "weathered" {
		t.Errorf("batchStyles = %v", styles)
	}

	if _, err := batchStyles("no-such-style"); err == nil {
		t.Error("expected error for unknown style")
	}

	styles, err = batchStyles("")
	if err != nil || styles != nil {
		t.Errorf("empty list should give nil, got %v, %v", styles, err)
	}
}

func TestBuildBatchTasks(t *testing.T) {
	base := texture.DefaultParams(64, 64, color.NRGBA{R: 140, G: 134, B: 128, A: 255}, 0)

	tasks := buildBatchTasks(base, []int64{1, 2}, []string{"weathered"}, "concrete", "out")
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "concrete_weathered_seed1" {
		t.Errorf("unexpected task name %q", tasks[0].Name)
	}
	if tasks[1].Params.Seed != 2 {
		t.Errorf("expected seed 2, got %d", tasks[1].Params.Seed)
	}

	// No styles renders the base params once per seed.
	tasks = buildBatchTasks(base, []int64{5}, nil, "concrete", "out")
	if len(tasks) != 1 || tasks[0].Name != "concrete_seed5" {
		t.Errorf("unexpected tasks %v", tasks)
	}
}
