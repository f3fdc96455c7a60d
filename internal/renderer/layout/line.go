// Package layout provides line layout computation for the renderer.
package layout

import (
	"github.com/turtleide/turtle/internal/renderer/core"
)

// LineLayout represents the visual layout of a single document line.
type LineLayout struct {
	// Visual representation
	Cells []core.Cell // Visual cells (after tab expansion, etc.)

	// Column mappings for cursor positioning
	VisualCols []int // Map visual column -> character column
	BufferCols []int // Map character column -> visual column

	// Width is the total visual width in columns.
	Width int
}

// VisualColumn converts a character column to a visual column.
// If col is beyond the line, extrapolates from the end.
func (l *LineLayout) VisualColumn(col int) int {
	if col < 0 {
		return 0
	}
	if col >= len(l.BufferCols) {
		return l.Width + col - len(l.BufferCols)
	}
	return l.BufferCols[col]
}

// BufferColumn converts a visual column to a character column.
// Columns past the end of the line map to the line end.
func (l *LineLayout) BufferColumn(visCol int) int {
	if visCol < 0 {
		return 0
	}
	if visCol >= len(l.VisualCols) {
		return len(l.BufferCols)
	}
	return l.VisualCols[visCol]
}

// IsContinuation reports whether the cell at visCol is the second half of
// a wide character.
func (l *LineLayout) IsContinuation(visCol int) bool {
	return visCol > 0 && visCol < len(l.Cells) && l.Cells[visCol].Width == 0
}

// LayoutEngine computes line layouts.
type LayoutEngine struct {
	tabWidth int
}

// NewLayoutEngine creates a layout engine with the given tab width.
func NewLayoutEngine(tabWidth int) *LayoutEngine {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &LayoutEngine{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (e *LayoutEngine) TabWidth() int {
	return e.tabWidth
}

// SetTabWidth sets the tab width.
func (e *LayoutEngine) SetTabWidth(width int) {
	if width < 1 {
		width = 1
	}
	e.tabWidth = width
}

// Layout computes the visual layout for a line with every cell in style.
func (e *LayoutEngine) Layout(line string, style core.Style) *LineLayout {
	layout := &LineLayout{
		Cells:      make([]core.Cell, 0, len(line)),
		VisualCols: make([]int, 0, len(line)),
		BufferCols: make([]int, 0, len(line)),
	}

	visCol := 0
	col := 0
	for _, r := range line {
		layout.BufferCols = append(layout.BufferCols, visCol)

		if r == '\t' {
			for i := e.tabWidth - visCol%e.tabWidth; i > 0; i-- {
				layout.Cells = append(layout.Cells, core.EmptyCell(style))
				layout.VisualCols = append(layout.VisualCols, col)
				visCol++
			}
			col++
			continue
		}

		width := core.RuneWidth(r)
		if width == 0 {
			// Control character: mapped but not drawn.
			col++
			continue
		}

		layout.Cells = append(layout.Cells, core.Cell{Rune: r, Width: width, Style: style})
		layout.VisualCols = append(layout.VisualCols, col)
		visCol++

		if width == 2 {
			layout.Cells = append(layout.Cells, core.Cell{Style: style})
			layout.VisualCols = append(layout.VisualCols, col)
			visCol++
		}
		col++
	}

	layout.Width = visCol
	return layout
}

// ApplyStyle overlays style on the cells of character columns [start, end).
func (e *LayoutEngine) ApplyStyle(layout *LineLayout, start, end int, style core.Style) {
	if start >= end {
		return
	}
	from := min(layout.VisualColumn(start), len(layout.Cells))
	to := min(layout.VisualColumn(end), len(layout.Cells))
	for i := from; i < to; i++ {
		layout.Cells[i].Style = layout.Cells[i].Style.Merge(style)
	}
}
