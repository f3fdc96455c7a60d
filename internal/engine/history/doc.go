// Package history provides undo and redo for a document buffer.
//
// Every edit is recorded as an Operation: the text at a character offset
// that was replaced, the text that replaced it, and the insertion point
// before and after. Inverting an operation swaps the two texts, so undo is
// applying the inverse.
//
// Consecutive edits of the same kind that touch each other, such as typing
// a word or holding backspace, join a single undo entry until Separate is
// called, typically when the insertion point moves:
//
//	h := history.NewHistory(history.DefaultMaxEntries)
//	h.Apply(buf, history.NewInsertOperation(0, "h").WithCursors(0, 1))
//	h.Apply(buf, history.NewInsertOperation(1, "i").WithCursors(1, 2))
//	at, _ := h.Undo(buf) // removes "hi", at == 0
package history
