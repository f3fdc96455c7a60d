package history

import (
	"time"
	"unicode/utf8"
)

// Editor is the buffer surface operations are applied to.
type Editor interface {
	Replace(start, end int, text string) (int, error)
}

// Operation represents a single edit with its before and after state.
// Offsets are in characters.
type Operation struct {
	// Start is where the edit begins.
	Start int

	// OldText was removed at Start and NewText took its place.
	OldText string
	NewText string

	// CursorBefore and CursorAfter are the insertion points around the
	// edit.
	CursorBefore int
	CursorAfter  int

	Timestamp time.Time
}

// NewOperation creates an operation replacing oldText at start with newText.
func NewOperation(start int, oldText, newText string) *Operation {
	return &Operation{
		Start:     start,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// NewInsertOperation creates an operation inserting text at offset.
func NewInsertOperation(offset int, text string) *Operation {
	return NewOperation(offset, "", text)
}

// NewDeleteOperation creates an operation deleting deletedText at start.
func NewDeleteOperation(start int, deletedText string) *Operation {
	return NewOperation(start, deletedText, "")
}

// WithCursors records the insertion points around the operation.
func (op *Operation) WithCursors(before, after int) *Operation {
	op.CursorBefore = before
	op.CursorAfter = after
	return op
}

// IsInsert returns true if this is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.OldText == "" && op.NewText != ""
}

// IsDelete returns true if this is a pure deletion.
func (op *Operation) IsDelete() bool {
	return op.OldText != "" && op.NewText == ""
}

// IsReplace returns true if text was both removed and added.
func (op *Operation) IsReplace() bool {
	return op.OldText != "" && op.NewText != ""
}

// IsNoop returns true if the operation changes nothing.
func (op *Operation) IsNoop() bool {
	return op.OldText == op.NewText
}

// OldEnd returns the end of the replaced text before the edit.
func (op *Operation) OldEnd() int {
	return op.Start + utf8.RuneCountInString(op.OldText)
}

// NewEnd returns the end of the inserted text after the edit.
func (op *Operation) NewEnd() int {
	return op.Start + utf8.RuneCountInString(op.NewText)
}

// Delta returns the change in document length in characters.
func (op *Operation) Delta() int {
	return utf8.RuneCountInString(op.NewText) - utf8.RuneCountInString(op.OldText)
}

// Invert returns the operation that undoes op.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Start:        op.Start,
		OldText:      op.NewText,
		NewText:      op.OldText,
		CursorBefore: op.CursorAfter,
		CursorAfter:  op.CursorBefore,
		Timestamp:    time.Now(),
	}
}

// Apply performs the operation on buf.
func (op *Operation) Apply(buf Editor) error {
	_, err := buf.Replace(op.Start, op.OldEnd(), op.NewText)
	return err
}

// Description names the kind of edit for display.
func (op *Operation) Description() string {
	switch {
	case op.IsInsert():
		return "Typing"
	case op.IsDelete():
		return "Delete"
	default:
		return "Replace"
	}
}

// continues reports whether next extends op as one undo unit: typing
// that continues where op ended, or deletion next to where op deleted.
func (op *Operation) continues(next *Operation) bool {
	switch {
	case op.IsInsert() && next.IsInsert():
		return next.Start == op.NewEnd()
	case op.IsDelete() && next.IsDelete():
		// Backspace runs leftwards, delete stays in place.
		return next.OldEnd() == op.Start || next.Start == op.Start
	default:
		return false
	}
}

// OperationInfo provides information about an undo entry.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}
