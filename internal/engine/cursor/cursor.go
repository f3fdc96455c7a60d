package cursor

import (
	"fmt"

	"github.com/turtleide/turtle/internal/engine/buffer"
)

// Document is the read-only view of the buffer that cursor movement needs.
// *buffer.Buffer satisfies it.
type Document interface {
	Len() int
	LineCount() int
	LineLen(line int) (int, error)
	OffsetToPosition(offset int) (buffer.Position, error)
	PositionToOffset(pos buffer.Position) (int, error)
}

// Cursor represents the insertion point in the buffer.
// Cursor is an immutable value type.
type Cursor struct {
	offset int
}

// NewCursor creates a cursor at the given character offset.
func NewCursor(offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{offset: offset}
}

// Offset returns the cursor's character offset.
func (c Cursor) Offset() int {
	return c.offset
}

// MoveTo returns a new cursor at the given offset.
func (c Cursor) MoveTo(offset int) Cursor {
	return NewCursor(offset)
}

// MoveBy returns a new cursor moved by delta characters.
func (c Cursor) MoveBy(delta int) Cursor {
	return NewCursor(c.offset + delta)
}

// Clamp returns a cursor clamped to [0, maxOffset].
func (c Cursor) Clamp(maxOffset int) Cursor {
	if c.offset > maxOffset {
		return Cursor{offset: maxOffset}
	}
	return c
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d)", c.offset)
}

// Left moves one character back, stopping at the start of the buffer.
func (c Cursor) Left(doc Document) Cursor {
	return c.MoveBy(-1).Clamp(doc.Len())
}

// Right moves one character forward, stopping at the end of the buffer.
func (c Cursor) Right(doc Document) Cursor {
	return c.MoveBy(1).Clamp(doc.Len())
}

// Up moves to the same column on the previous line, or to the end of that
// line when it is shorter.
func (c Cursor) Up(doc Document) Cursor {
	return c.verticalMove(doc, -1)
}

// Down moves to the same column on the next line, or to the end of that
// line when it is shorter.
func (c Cursor) Down(doc Document) Cursor {
	return c.verticalMove(doc, 1)
}

// Home moves to the start of the current line.
func (c Cursor) Home(doc Document) Cursor {
	pos, err := doc.OffsetToPosition(c.Clamp(doc.Len()).offset)
	if err != nil {
		return c.Clamp(doc.Len())
	}
	pos.Column = 0
	return c.toPosition(doc, pos)
}

// End moves to the end of the current line, before its separator.
func (c Cursor) End(doc Document) Cursor {
	pos, err := doc.OffsetToPosition(c.Clamp(doc.Len()).offset)
	if err != nil {
		return c.Clamp(doc.Len())
	}
	n, err := doc.LineLen(pos.Line)
	if err != nil {
		return c.Clamp(doc.Len())
	}
	pos.Column = n
	return c.toPosition(doc, pos)
}

func (c Cursor) verticalMove(doc Document, delta int) Cursor {
	c = c.Clamp(doc.Len())
	pos, err := doc.OffsetToPosition(c.offset)
	if err != nil {
		return c
	}
	target := pos.Line + delta
	if target < 1 || target > doc.LineCount() {
		return c
	}
	n, err := doc.LineLen(target)
	if err != nil {
		return c
	}
	return c.toPosition(doc, buffer.Position{Line: target, Column: min(pos.Column, n)})
}

func (c Cursor) toPosition(doc Document, pos buffer.Position) Cursor {
	off, err := doc.PositionToOffset(pos)
	if err != nil {
		return c
	}
	return NewCursor(off)
}
