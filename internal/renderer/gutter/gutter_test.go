package gutter

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.ShowLineNumbers {
		t.Error("ShowLineNumbers should be true by default")
	}
	if cfg.MinLineNumberWidth != 3 {
		t.Errorf("expected MinLineNumberWidth 3, got %d", cfg.MinLineNumberWidth)
	}
}

func TestNewGutter(t *testing.T) {
	g := New(DefaultConfig())

	if g == nil {
		t.Fatal("New returned nil")
	}

	// Default: 3 line number digits + 1 separator = 4
	if width := g.Width(); width != 4 {
		t.Errorf("expected initial width 4, got %d", width)
	}
	listing := g.Listing()
	if len(listing) != 1 || listing[0] != "  1" {
		t.Errorf("initial listing = %q, want [\"  1\"]", listing)
	}
}

func TestGutterSyncListing(t *testing.T) {
	g := New(DefaultConfig())

	g.Sync(10, 0.5)
	listing := g.Listing()
	if len(listing) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(listing))
	}
	for i, want := range map[int]string{0: "  1", 8: "  9", 9: " 10"} {
		if listing[i] != want {
			t.Errorf("listing[%d] = %q, want %q", i, listing[i], want)
		}
	}
	if g.Fraction() != 0.5 {
		t.Errorf("expected fraction 0.5, got %v", g.Fraction())
	}

	g.Sync(1000, 0)
	if w := g.LineNumberWidth(); w != 4 {
		t.Errorf("expected 4 digits for 1000 lines, got %d", w)
	}
	if w := g.Width(); w != 5 {
		t.Errorf("expected width 5 for 1000 lines, got %d", w)
	}
	if last := g.Listing()[999]; last != "1000" {
		t.Errorf("last entry = %q, want 1000", last)
	}

	g.Sync(3, 0)
	if got := g.LineCount(); got != 3 {
		t.Errorf("listing should shrink to 3 lines, got %d", got)
	}
}

func TestGutterSyncClamps(t *testing.T) {
	tests := []struct {
		name      string
		lines     int
		fraction  float64
		wantLines int
		wantFrac  float64
	}{
		{"zero lines", 0, 0.3, 1, 0.3},
		{"negative fraction", 5, -1, 5, 0},
		{"fraction above one", 5, 2, 5, 1},
		{"nan fraction", 5, math.NaN(), 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(DefaultConfig())
			g.Sync(tt.lines, tt.fraction)
			if g.LineCount() != tt.wantLines {
				t.Errorf("LineCount() = %d, want %d", g.LineCount(), tt.wantLines)
			}
			if g.Fraction() != tt.wantFrac {
				t.Errorf("Fraction() = %v, want %v", g.Fraction(), tt.wantFrac)
			}
		})
	}
}

func TestGutterTopLine(t *testing.T) {
	tests := []struct {
		name     string
		lines    int
		fraction float64
		rows     int
		want     int
	}{
		{"top", 100, 0, 10, 1},
		{"quarter", 100, 0.25, 10, 26},
		{"clamped at end", 100, 1, 10, 91},
		{"short document", 5, 0.5, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(DefaultConfig())
			g.Sync(tt.lines, tt.fraction)
			if got := g.TopLine(tt.rows); got != tt.want {
				t.Errorf("TopLine(%d) = %d, want %d", tt.rows, got, tt.want)
			}
		})
	}
}

func TestScrollFractionRoundTrip(t *testing.T) {
	g := New(DefaultConfig())
	const total, rows = 100, 10

	for top := 0; top <= total-rows; top++ {
		g.Sync(total, ScrollFraction(top, total))
		if got := g.TopLine(rows); got != top+1 {
			t.Fatalf("top %d: TopLine = %d, want %d", top, got, top+1)
		}
	}
}

func TestScrollFraction(t *testing.T) {
	tests := []struct {
		top, total int
		want       float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{3, 0, 0},
		{-2, 10, 0},
		{20, 10, 1},
	}
	for _, tt := range tests {
		if got := ScrollFraction(tt.top, tt.total); got != tt.want {
			t.Errorf("ScrollFraction(%d, %d) = %v, want %v", tt.top, tt.total, got, tt.want)
		}
	}
}

func TestGutterVisible(t *testing.T) {
	g := New(DefaultConfig())
	g.Sync(10, 0.5)

	got := g.Visible(3)
	want := []string{"  6", "  7", "  8"}
	if len(got) != len(want) {
		t.Fatalf("Visible(3) = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Visible(3)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := g.Visible(0); got != nil {
		t.Errorf("Visible(0) = %q, want nil", got)
	}
}

func TestGutterHidden(t *testing.T) {
	g := New(Config{ShowLineNumbers: false})
	if g.Width() != 0 {
		t.Errorf("hidden gutter width = %d, want 0", g.Width())
	}
	if g.LineNumberWidth() != 3 {
		t.Errorf("zero min width should default to 3, got %d", g.LineNumberWidth())
	}
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"7", 3, "  7"},
		{"123", 3, "123"},
		{"12345", 3, "12345"},
	}
	for _, tt := range tests {
		if got := PadLeft(tt.s, tt.width); got != tt.want {
			t.Errorf("PadLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestCalculateWidth(t *testing.T) {
	tests := []struct {
		lines, min, want int
	}{
		{1, 3, 3},
		{999, 3, 3},
		{1000, 3, 4},
		{123456, 3, 6},
		{5, 1, 1},
	}
	for _, tt := range tests {
		if got := CalculateWidth(tt.lines, tt.min); got != tt.want {
			t.Errorf("CalculateWidth(%d, %d) = %d, want %d", tt.lines, tt.min, got, tt.want)
		}
	}
}
