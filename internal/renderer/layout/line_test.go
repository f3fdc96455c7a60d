package layout

import (
	"testing"

	"github.com/turtleide/turtle/internal/renderer/core"
)

func TestNewLayoutEngine(t *testing.T) {
	e := NewLayoutEngine(4)
	if e.TabWidth() != 4 {
		t.Errorf("expected tab width 4, got %d", e.TabWidth())
	}

	// Invalid tab width defaults to 4
	e = NewLayoutEngine(0)
	if e.TabWidth() != 4 {
		t.Errorf("expected default tab width 4, got %d", e.TabWidth())
	}
}

func TestLayoutEngineSetTabWidth(t *testing.T) {
	e := NewLayoutEngine(4)
	e.SetTabWidth(8)
	if e.TabWidth() != 8 {
		t.Errorf("expected tab width 8, got %d", e.TabWidth())
	}

	e.SetTabWidth(0)
	if e.TabWidth() != 1 {
		t.Errorf("expected minimum tab width 1, got %d", e.TabWidth())
	}
}

func TestLayoutPlain(t *testing.T) {
	e := NewLayoutEngine(4)
	l := e.Layout("abc", core.DefaultStyle())

	if l.Width != 3 || len(l.Cells) != 3 {
		t.Fatalf("expected width 3, got %d (%d cells)", l.Width, len(l.Cells))
	}
	for i, want := range "abc" {
		if l.Cells[i].Rune != want {
			t.Errorf("cell %d = %q, want %q", i, l.Cells[i].Rune, want)
		}
	}
}

func TestLayoutTabs(t *testing.T) {
	e := NewLayoutEngine(4)
	l := e.Layout("a\tb", core.DefaultStyle())

	// "a" + 3 spaces + "b"
	if l.Width != 5 {
		t.Fatalf("expected width 5, got %d", l.Width)
	}
	if got := l.VisualColumn(2); got != 4 {
		t.Errorf("VisualColumn(2) = %d, want 4", got)
	}
	if got := l.BufferColumn(2); got != 1 {
		t.Errorf("BufferColumn(2) = %d, want 1 (inside the tab)", got)
	}
}

func TestLayoutWideCharacters(t *testing.T) {
	e := NewLayoutEngine(4)
	l := e.Layout("日x", core.DefaultStyle())

	if l.Width != 3 {
		t.Fatalf("expected width 3, got %d", l.Width)
	}
	if !l.IsContinuation(1) {
		t.Error("cell 1 should be a continuation")
	}
	if l.IsContinuation(0) || l.IsContinuation(2) {
		t.Error("cells 0 and 2 are not continuations")
	}
	if got := l.VisualColumn(1); got != 2 {
		t.Errorf("VisualColumn(1) = %d, want 2", got)
	}
}

func TestLayoutControlCharacters(t *testing.T) {
	e := NewLayoutEngine(4)
	l := e.Layout("ab\r", core.DefaultStyle())

	if l.Width != 2 {
		t.Errorf("carriage return should not be drawn, width = %d", l.Width)
	}
	if got := l.VisualColumn(3); got != 2 {
		t.Errorf("VisualColumn(3) = %d, want 2", got)
	}
}

func TestColumnMappingBeyondLine(t *testing.T) {
	e := NewLayoutEngine(4)
	l := e.Layout("abc", core.DefaultStyle())

	if got := l.VisualColumn(5); got != 5 {
		t.Errorf("VisualColumn(5) = %d, want 5", got)
	}
	if got := l.BufferColumn(40); got != 3 {
		t.Errorf("BufferColumn(40) = %d, want 3", got)
	}
	if got := l.BufferColumn(-1); got != 0 {
		t.Errorf("BufferColumn(-1) = %d, want 0", got)
	}
}

func TestApplyStyle(t *testing.T) {
	e := NewLayoutEngine(4)
	base := core.NewStyle(core.ColorWhite)
	l := e.Layout("x\tyz", base)

	keyword := core.NewStyle(core.ColorYellow)
	e.ApplyStyle(l, 2, 4, keyword)

	// Tab occupies visual 1..3; y at 4, z at 5.
	for i := 0; i < 4; i++ {
		if !l.Cells[i].Style.Equals(base) {
			t.Errorf("cell %d should keep base style", i)
		}
	}
	for i := 4; i < 6; i++ {
		if !l.Cells[i].Style.Foreground.Equals(core.ColorYellow) {
			t.Errorf("cell %d should be styled", i)
		}
	}

	// Empty and inverted ranges are ignored.
	e.ApplyStyle(l, 3, 3, core.NewStyle(core.ColorBlack))
	e.ApplyStyle(l, 4, 1, core.NewStyle(core.ColorBlack))
	if l.Cells[0].Style.Foreground.Equals(core.ColorBlack) {
		t.Error("empty ranges must not restyle")
	}
}
