package cursor

import (
	"fmt"

	"github.com/turtleide/turtle/internal/engine/buffer"
)

// DefaultLabel is reported whenever the insertion offset cannot be translated.
const DefaultLabel = "Ln 1, Col 0"

// Locator translates character offsets into positions.
// *buffer.Buffer satisfies it.
type Locator interface {
	OffsetToPosition(offset int) (buffer.Position, error)
}

// Tracker derives the human-readable cursor position from the insertion offset.
type Tracker struct {
	doc Locator
}

// NewTracker creates a tracker reading positions from doc.
func NewTracker(doc Locator) *Tracker {
	return &Tracker{doc: doc}
}

// Position returns the (line, column) of the offset.
// Untranslatable offsets yield line 1, column 0.
func (t *Tracker) Position(offset int) buffer.Position {
	if t == nil || t.doc == nil {
		return buffer.Position{Line: 1}
	}
	pos, err := t.doc.OffsetToPosition(offset)
	if err != nil {
		return buffer.Position{Line: 1}
	}
	return pos
}

// Label formats the offset as "Ln {line}, Col {col}".
func (t *Tracker) Label(offset int) string {
	if t == nil || t.doc == nil {
		return DefaultLabel
	}
	pos, err := t.doc.OffsetToPosition(offset)
	if err != nil {
		return DefaultLabel
	}
	return FormatLabel(pos)
}

// FormatLabel formats a position as "Ln {line}, Col {col}".
func FormatLabel(pos buffer.Position) string {
	return fmt.Sprintf("Ln %d, Col %d", pos.Line, pos.Column)
}
