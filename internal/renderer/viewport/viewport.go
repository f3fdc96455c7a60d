// Package viewport provides viewport management for the renderer.
package viewport

import (
	"sync"

	"github.com/turtleide/turtle/internal/renderer/gutter"
)

// Viewport represents the visible portion of the document. Lines are
// 0-based row indexes here; columns are character columns.
type Viewport struct {
	mu sync.RWMutex

	// Position in document (first visible line)
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	lineCount int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:     max(width, 1),
		height:    max(height, 1),
		lineCount: 1,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// Resize updates the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.clampLocked()
}

// SetLineCount records the document line count and clamps the scroll
// position to it.
func (v *Viewport) SetLineCount(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lineCount = max(n, 1)
	v.clampLocked()
}

// LineCount returns the recorded document line count.
func (v *Viewport) LineCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lineCount
}

// ScrollBy moves the view by delta lines and reports whether it moved.
func (v *Viewport) ScrollBy(delta int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	old := v.topLine
	v.topLine += delta
	v.clampLocked()
	return v.topLine != old
}

// ScrollTo makes line the first visible line, as far as the document allows.
func (v *Viewport) ScrollTo(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = line
	v.clampLocked()
}

// EnsureVisible scrolls the minimum amount needed to show (line, col).
// It reports whether the view moved.
func (v *Viewport) EnsureVisible(line, col int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	oldTop, oldLeft := v.topLine, v.leftColumn
	if line < v.topLine {
		v.topLine = line
	} else if line >= v.topLine+v.height {
		v.topLine = line - v.height + 1
	}

	if col < v.leftColumn {
		v.leftColumn = col
	} else if col >= v.leftColumn+v.width {
		v.leftColumn = col - v.width + 1
	}
	v.clampLocked()
	return v.topLine != oldTop || v.leftColumn != oldLeft
}

// IsLineVisible returns true if the line is within the viewport.
func (v *Viewport) IsLineVisible(line int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return line >= v.topLine && line < v.topLine+v.height && line < v.lineCount
}

// Fraction returns the vertical scroll fraction of the view.
func (v *Viewport) Fraction() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return gutter.ScrollFraction(v.topLine, v.lineCount)
}

func (v *Viewport) clampLocked() {
	maxTop := max(v.lineCount-v.height, 0)
	v.topLine = min(max(v.topLine, 0), maxTop)
	v.leftColumn = max(v.leftColumn, 0)
}
