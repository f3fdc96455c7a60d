// Package buffer provides the document buffer of the editor: canonical text
// storage with character-offset addressing and derived line boundaries.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Character (rune) offsets, never byte offsets, on the public API
//   - Conversion between offsets and (line, column) positions
//   - Revision tracking so consumers can detect changes cheaply
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("def foo():\n    return 1")
//
//	pos, _ := buf.OffsetToPosition(15) // Ln 2, Col 4
//	off, _ := buf.PositionToOffset(pos) // 15
//
//	buf.Insert(0, "# header\n")
//
// Line Model:
//
// Lines are separated by '\n' only. A '\r' preceding '\n' is ordinary line
// content, so loading and then writing an unedited buffer reproduces the
// original bytes exactly. The line count is always the number of '\n'
// characters plus one; an empty buffer holds exactly one empty line.
//
// Position Types:
//
//   - offset (int): 0-based character count from the start of the buffer.
//     Every offset in [0, Len()] is a valid cursor position.
//   - Position: 1-based line, 0-based column (characters from line start).
package buffer
