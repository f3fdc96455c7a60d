package renderer

import (
	"sync"

	"github.com/turtleide/turtle/internal/engine/buffer"
	"github.com/turtleide/turtle/internal/engine/search"
	"github.com/turtleide/turtle/internal/renderer/backend"
	"github.com/turtleide/turtle/internal/renderer/core"
	"github.com/turtleide/turtle/internal/renderer/gutter"
	"github.com/turtleide/turtle/internal/renderer/highlight"
	"github.com/turtleide/turtle/internal/renderer/layout"
	"github.com/turtleide/turtle/internal/renderer/statusline"
	"github.com/turtleide/turtle/internal/renderer/viewport"
)

// Document provides read access to the lines being drawn.
// Line numbers are 1-based.
type Document interface {
	LineCount() int
	LineStart(line int) (int, error)
	LineText(line int) (string, error)
}

// SpanSource provides flattened highlighting in character offsets.
type SpanSource interface {
	SpansIn(start, end int) []highlight.Span
}

// Frame is everything needed to paint one screen.
type Frame struct {
	Doc      Document
	Spans    SpanSource
	Theme    *highlight.Theme
	Viewport *viewport.Viewport
	Gutter   *gutter.Gutter
	Status   *statusline.StatusLine

	// Cursor is the insertion point.
	Cursor buffer.Position

	// Found is the most recent search match, drawn over highlighting.
	Found *search.Match
}

// Options configures the renderer.
type Options struct {
	// TabWidth is the number of columns between tab stops.
	TabWidth int
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{TabWidth: 4}
}

// Renderer paints frames onto a backend.
type Renderer struct {
	mu sync.Mutex

	backend backend.Backend
	layout  *layout.LayoutEngine

	frameCount uint64
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		layout:  layout.NewLayoutEngine(opts.TabWidth),
	}
}

// SetTabWidth changes the tab width used for layout.
func (r *Renderer) SetTabWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layout.SetTabWidth(width)
}

// TextRows returns the number of document rows for a screen height: all
// rows but the status bar.
func TextRows(height int) int {
	return max(height-1, 1)
}

// TextSize returns the document area size for the backend's current size
// and the given gutter.
func (r *Renderer) TextSize(g *gutter.Gutter) (width, height int) {
	w, h := r.backend.Size()
	return max(w-g.Width(), 1), TextRows(h)
}

// Render paints f and flushes it to the screen.
func (r *Renderer) Render(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}
	rows := TextRows(height)
	gutterWidth := f.Gutter.Width()

	numbers := f.Gutter.Visible(rows)
	for row := 0; row < rows && row < height; row++ {
		r.renderGutter(f, numbers, row, gutterWidth)
		r.renderLine(f, f.Viewport.TopLine()+1, row, gutterWidth, width)
	}

	if height > 1 {
		r.renderStatus(f, height-1, width)
	}
	r.renderCursor(f, rows, gutterWidth, width, height)

	r.backend.Show()
	r.frameCount++
}

// renderGutter draws the line number for one screen row.
func (r *Renderer) renderGutter(f Frame, numbers []string, row, gutterWidth int) {
	if gutterWidth == 0 {
		return
	}
	style := f.Theme.GutterStyle()
	r.backend.Fill(core.RectFromSize(row, 0, 1, gutterWidth), core.EmptyCell(style))
	if row >= len(numbers) {
		return
	}
	for x, ch := range []rune(numbers[row]) {
		if x < gutterWidth-1 {
			r.backend.SetCell(x, row, core.NewStyledCell(ch, style))
		}
	}
}

// renderLine draws document line top+row into screen row.
func (r *Renderer) renderLine(f Frame, top, row, gutterWidth, width int) {
	textStyle := f.Theme.TextStyle()
	r.backend.Fill(core.RectFromSize(row, gutterWidth, 1, width-gutterWidth), core.EmptyCell(textStyle))

	line := top + row
	if line > f.Doc.LineCount() {
		return
	}
	text, err := f.Doc.LineText(line)
	if err != nil {
		return
	}
	start, err := f.Doc.LineStart(line)
	if err != nil {
		return
	}

	l := r.layout.Layout(text, textStyle)
	end := start + len(l.BufferCols)
	if f.Spans != nil {
		for _, s := range f.Spans.SpansIn(start, end) {
			r.layout.ApplyStyle(l, s.Start-start, s.End-start, f.Theme.StyleOf(s.Category))
		}
	}
	if m := f.Found; m != nil && m.Start < end && m.End > start {
		r.layout.ApplyStyle(l, max(m.Start, start)-start, min(m.End, end)-start, f.Theme.Found)
	}

	left := f.Viewport.LeftColumn()
	for x := gutterWidth; x < width; x++ {
		vis := left + x - gutterWidth
		if vis >= len(l.Cells) {
			break
		}
		if l.IsContinuation(vis) {
			continue
		}
		r.backend.SetCell(x, row, l.Cells[vis])
	}
}

// renderStatus draws the status bar or the active prompt.
func (r *Renderer) renderStatus(f Frame, row, width int) {
	style := f.Theme.StatusStyle()
	if f.Status.Prompting() {
		style = f.Theme.MenuStyle()
	} else if _, typ := f.Status.Message(); typ == statusline.MessageError {
		style = style.Bold()
	}

	r.backend.Fill(core.RectFromSize(row, 0, 1, width), core.EmptyCell(style))
	x := 0
	for _, ch := range f.Status.Render(width) {
		cell := core.NewStyledCell(ch, style)
		if cell.Width == 0 {
			continue
		}
		r.backend.SetCell(x, row, cell)
		x += cell.Width
	}
}

// renderCursor positions the terminal cursor at the insertion point, or in
// the prompt while one is active.
func (r *Renderer) renderCursor(f Frame, rows, gutterWidth, width, height int) {
	if f.Status.Prompting() {
		r.backend.ShowCursor(f.Status.PromptCursor()+1, height-1)
		return
	}

	row := f.Cursor.Line - 1 - f.Viewport.TopLine()
	if row < 0 || row >= rows {
		r.backend.HideCursor()
		return
	}
	text, err := f.Doc.LineText(f.Cursor.Line)
	if err != nil {
		r.backend.HideCursor()
		return
	}
	vis := r.layout.Layout(text, core.DefaultStyle()).VisualColumn(f.Cursor.Column)
	x := gutterWidth + vis - f.Viewport.LeftColumn()
	if x < gutterWidth || x >= width {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(x, row)
}

// ScreenToPosition maps a screen cell to a document position. It reports
// false for cells outside the text area rows.
func (r *Renderer) ScreenToPosition(f Frame, x, y int) (buffer.Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, height := r.backend.Size()
	if y < 0 || y >= TextRows(height) {
		return buffer.Position{}, false
	}

	line := min(f.Viewport.TopLine()+y+1, f.Doc.LineCount())
	text, err := f.Doc.LineText(line)
	if err != nil {
		return buffer.Position{}, false
	}
	vis := max(x-f.Gutter.Width(), 0) + f.Viewport.LeftColumn()
	col := r.layout.Layout(text, core.DefaultStyle()).BufferColumn(vis)
	return buffer.Position{Line: line, Column: col}, true
}

// VisualColumn returns the display column of a character column on a line.
func (r *Renderer) VisualColumn(text string, col int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout.Layout(text, core.DefaultStyle()).VisualColumn(col)
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}
