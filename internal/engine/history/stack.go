package history

import (
	"errors"
	"sync"
)

// DefaultMaxEntries is the undo depth used when none is given.
const DefaultMaxEntries = 1000

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// undoEntry is one undo unit: operations applied in order.
type undoEntry struct {
	ops []*Operation

	// open entries still accept continuing operations.
	open bool
}

func (e *undoEntry) info() OperationInfo {
	first := e.ops[0]
	return OperationInfo{Description: first.Description(), Timestamp: first.Timestamp}
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Apply performs op on buf and records it.
func (h *History) Apply(buf Editor, op *Operation) error {
	if err := op.Apply(buf); err != nil {
		return err
	}
	h.Push(op)
	return nil
}

// Push records an operation that has already been applied.
// Clears the redo stack.
func (h *History) Push(op *Operation) {
	if op.IsNoop() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil

	if n := len(h.undoStack); n > 0 {
		top := h.undoStack[n-1]
		if top.open && top.ops[len(top.ops)-1].continues(op) {
			top.ops = append(top.ops, op)
			return
		}
		top.open = false
	}

	h.undoStack = append(h.undoStack, &undoEntry{ops: []*Operation{op}, open: true})

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Separate closes the current undo entry so the next edit starts a new one.
func (h *History) Separate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.undoStack); n > 0 {
		h.undoStack[n-1].open = false
	}
}

// Undo reverts the last entry and returns the insertion point from before
// it.
func (h *History) Undo(buf Editor) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return 0, ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]

	for i := len(entry.ops) - 1; i >= 0; i-- {
		if err := entry.ops[i].Invert().Apply(buf); err != nil {
			return 0, err
		}
	}

	entry.open = false
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return entry.ops[0].CursorBefore, nil
}

// Redo reapplies the last undone entry and returns the insertion point
// from after it.
func (h *History) Redo(buf Editor) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return 0, ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]

	for _, op := range entry.ops {
		if err := op.Apply(buf); err != nil {
			return 0, err
		}
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return entry.ops[len(entry.ops)-1].CursorAfter, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
