// Package gutter provides the line number gutter shown to the left of the
// text area and keeps it aligned with the main view.
//
// Alignment is by scroll fraction, not by content: the gutter lists
// 1..lineCount and is scrolled to the same fraction as the main view. When
// the main view wraps long lines the numbers drift relative to the visual
// rows they label; that drift is part of the contract.
package gutter

import (
	"math"
	"strconv"
	"sync"
)

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display.
	ShowLineNumbers bool

	// MinLineNumberWidth is the minimum number of digit columns.
	MinLineNumberWidth int
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		MinLineNumberWidth: 3,
	}
}

// Gutter holds the line number listing and its scroll fraction.
type Gutter struct {
	mu sync.RWMutex

	config    Config
	formatter *LineNumberFormatter

	lineCount int
	fraction  float64
	listing   []string
}

// New creates a gutter listing a single line.
func New(config Config) *Gutter {
	if config.MinLineNumberWidth <= 0 {
		config.MinLineNumberWidth = DefaultConfig().MinLineNumberWidth
	}
	g := &Gutter{
		config:    config,
		formatter: NewLineNumberFormatter(config.MinLineNumberWidth),
	}
	g.syncLocked(1, 0)
	return g
}

// Sync regenerates the listing as 1..lineCount and sets the gutter's scroll
// fraction to the main view's. A line count below one is treated as one and
// the fraction is clamped to [0, 1].
func (g *Gutter) Sync(lineCount int, mainFraction float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.syncLocked(lineCount, mainFraction)
}

func (g *Gutter) syncLocked(lineCount int, fraction float64) {
	if lineCount < 1 {
		lineCount = 1
	}
	g.fraction = clampFraction(fraction)

	if lineCount == g.lineCount && g.listing != nil {
		return
	}
	g.lineCount = lineCount
	g.formatter.SetWidth(CalculateWidth(lineCount, g.config.MinLineNumberWidth))

	g.listing = make([]string, lineCount)
	for i := range g.listing {
		g.listing[i] = g.formatter.Format(i + 1)
	}
}

// Listing returns a copy of the padded line numbers, one per line.
func (g *Gutter) Listing() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.listing...)
}

// LineCount returns the number of listed lines.
func (g *Gutter) LineCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lineCount
}

// Fraction returns the gutter's vertical scroll fraction.
func (g *Gutter) Fraction() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.fraction
}

// LineNumberWidth returns the digit columns used by the listing.
func (g *Gutter) LineNumberWidth() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.formatter.Width()
}

// Width returns the total gutter width: digits plus one separator column,
// or zero when line numbers are hidden.
func (g *Gutter) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.config.ShowLineNumbers {
		return 0
	}
	return g.formatter.Width() + 1
}

// TopLine returns the 1-based number of the first listed line shown in a
// view of viewRows rows at the current fraction.
func (g *Gutter) TopLine(viewRows int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return topIndex(g.fraction, g.lineCount, viewRows) + 1
}

// Visible returns the listing entries shown in a view of viewRows rows.
func (g *Gutter) Visible(viewRows int) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if viewRows <= 0 {
		return nil
	}
	top := topIndex(g.fraction, g.lineCount, viewRows)
	end := min(top+viewRows, len(g.listing))
	return append([]string(nil), g.listing[top:end]...)
}

// ScrollFraction returns the scroll fraction of a view whose first visible
// row is top (0-based) out of total rows.
func ScrollFraction(top, total int) float64 {
	if total <= 0 || top <= 0 {
		return 0
	}
	return clampFraction(float64(top) / float64(total))
}

// topIndex maps a fraction to a 0-based first row, never scrolling past
// the point where the last row reaches the bottom of the view.
func topIndex(fraction float64, total, viewRows int) int {
	top := int(math.Floor(fraction*float64(total) + 1e-9))
	if maxTop := total - max(viewRows, 1); top > maxTop {
		top = maxTop
	}
	return max(top, 0)
}

func clampFraction(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// countDigits returns the number of decimal digits in n.
func countDigits(n int) int {
	if n <= 0 {
		return 1
	}
	return len(strconv.Itoa(n))
}
