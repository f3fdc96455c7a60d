package buffer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineSeparator is the only character that ends a line.
const LineSeparator = '\n'

// Buffer holds the document text together with a derived line index.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	index      lineIndex
	revisionID RevisionID
}

// lineIndex records where each line starts, both in characters and in bytes.
// It is rebuilt from the text after every mutation.
type lineIndex struct {
	runeStarts []int
	byteStarts []int
	runeLen    int
}

func buildIndex(s string) lineIndex {
	idx := lineIndex{
		runeStarts: []int{0},
		byteStarts: []int{0},
	}
	n := 0
	for i, r := range s {
		n++
		if r == LineSeparator {
			idx.runeStarts = append(idx.runeStarts, n)
			idx.byteStarts = append(idx.byteStarts, i+1)
		}
	}
	idx.runeLen = n
	return idx
}

// lineOf returns the 0-indexed line containing the character offset.
func (idx *lineIndex) lineOf(offset int) int {
	// First line whose start is past offset, minus one.
	return sort.SearchInts(idx.runeStarts, offset+1) - 1
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		index:      buildIndex(""),
		revisionID: NewRevisionID(),
	}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	b := NewBuffer()
	b.text = s
	b.index = buildIndex(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data)), nil
}

// Load replaces the whole content of the buffer.
func (b *Buffer) Load(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.index = buildIndex(text)
	b.revisionID = NewRevisionID()
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the total length of the buffer in characters.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.runeLen
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.runeLen == 0
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.index.runeStarts)
}

// LineStart returns the character offset at which the 1-indexed line begins.
func (b *Buffer) LineStart(line int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 1 || line > len(b.index.runeStarts) {
		return 0, fmt.Errorf("line %d: %w", line, ErrOffsetOutOfRange)
	}
	return b.index.runeStarts[line-1], nil
}

// LineLen returns the length of the 1-indexed line in characters,
// excluding the line separator.
func (b *Buffer) LineLen(line int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 1 || line > len(b.index.runeStarts) {
		return 0, fmt.Errorf("line %d: %w", line, ErrOffsetOutOfRange)
	}
	return b.lineLenLocked(line - 1), nil
}

func (b *Buffer) lineLenLocked(i int) int {
	if i+1 < len(b.index.runeStarts) {
		return b.index.runeStarts[i+1] - b.index.runeStarts[i] - 1
	}
	return b.index.runeLen - b.index.runeStarts[i]
}

// LineText returns the text of the 1-indexed line without its separator.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 1 || line > len(b.index.runeStarts) {
		return "", fmt.Errorf("line %d: %w", line, ErrOffsetOutOfRange)
	}
	start := b.index.byteStarts[line-1]
	end := len(b.text)
	if line < len(b.index.byteStarts) {
		end = b.index.byteStarts[line] - 1
	}
	return b.text[start:end], nil
}

// TextRange returns the text between two character offsets.
func (b *Buffer) TextRange(start, end int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 || start > end || end > b.index.runeLen {
		return "", fmt.Errorf("[%d:%d): %w", start, end, ErrRangeInvalid)
	}
	return b.text[b.byteOffsetLocked(start):b.byteOffsetLocked(end)], nil
}

// Coordinate Conversion

// OffsetToPosition converts a character offset to a line/column position.
// Every offset in [0, Len()] is valid, including the end of the buffer.
func (b *Buffer) OffsetToPosition(offset int) (Position, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > b.index.runeLen {
		return Position{}, fmt.Errorf("offset %d: %w", offset, ErrOffsetOutOfRange)
	}
	line := b.index.lineOf(offset)
	return Position{Line: line + 1, Column: offset - b.index.runeStarts[line]}, nil
}

// PositionToOffset converts a line/column position to a character offset.
// The column may address the end of the line but not beyond it.
func (b *Buffer) PositionToOffset(pos Position) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if pos.Line < 1 || pos.Line > len(b.index.runeStarts) {
		return 0, fmt.Errorf("position %s: %w", pos, ErrOffsetOutOfRange)
	}
	if pos.Column < 0 || pos.Column > b.lineLenLocked(pos.Line-1) {
		return 0, fmt.Errorf("position %s: %w", pos, ErrOffsetOutOfRange)
	}
	return b.index.runeStarts[pos.Line-1] + pos.Column, nil
}

// byteOffsetLocked maps a valid character offset to a byte offset.
func (b *Buffer) byteOffsetLocked(offset int) int {
	line := b.index.lineOf(offset)
	pos := b.index.byteStarts[line]
	for n := offset - b.index.runeStarts[line]; n > 0; n-- {
		_, size := utf8.DecodeRuneInString(b.text[pos:])
		pos += size
	}
	return pos
}

// Write Operations

// Insert inserts text at the given character offset.
// Returns the offset just past the inserted text.
func (b *Buffer) Insert(offset int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.index.runeLen {
		return 0, fmt.Errorf("insert at %d: %w", offset, ErrOffsetOutOfRange)
	}

	at := b.byteOffsetLocked(offset)
	b.setLocked(b.text[:at] + text + b.text[at:])

	return offset + utf8.RuneCountInString(text), nil
}

// Delete removes the characters in [start, end).
func (b *Buffer) Delete(start, end int) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces the characters in [start, end) with text.
// Returns the offset just past the replacement text.
func (b *Buffer) Replace(start, end int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > b.index.runeLen {
		return 0, fmt.Errorf("replace [%d:%d): %w", start, end, ErrRangeInvalid)
	}

	from := b.byteOffsetLocked(start)
	to := b.byteOffsetLocked(end)
	var sb strings.Builder
	sb.Grow(len(b.text) - (to - from) + len(text))
	sb.WriteString(b.text[:from])
	sb.WriteString(text)
	sb.WriteString(b.text[to:])
	b.setLocked(sb.String())

	return start + utf8.RuneCountInString(text), nil
}

func (b *Buffer) setLocked(text string) {
	b.text = text
	b.index = buildIndex(text)
	b.revisionID = NewRevisionID()
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}
