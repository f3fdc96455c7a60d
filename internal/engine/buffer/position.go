package buffer

import (
	"fmt"
	"sync/atomic"
)

// Position represents a line and column position.
// Line is 1-indexed, Column is 0-indexed and counted in characters.
type Position struct {
	Line   int // 1-indexed line number
	Column int // 0-indexed column (characters within line)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
