// Package search implements forward text search with a single wraparound.
//
// Patterns are literal text, not regular expressions. Offsets are character
// offsets into the searched text, matching the buffer package.
package search

import (
	"regexp"
	"unicode/utf8"
)

// Match is a found region [Start, End) in character offsets.
type Match struct {
	Start int
	End   int
	// Wrapped is true when the match was found after wrapping to the start.
	Wrapped bool
}

// Len returns the match length in characters.
func (m Match) Len() int {
	return m.End - m.Start
}

// State holds the current search state of a session.
// It is mutated only by Engine.Find and Engine.ClearFound.
type State struct {
	// Pattern is the last pattern that produced a match.
	Pattern string
	// CaseSensitive is the flag used for that match.
	CaseSensitive bool
	// LastMatch is the region shown with the "found" style, nil when none.
	LastMatch *Match
}

// Engine performs searches and owns the session's State.
type Engine struct {
	state State
}

// NewEngine creates a search engine with empty state.
func NewEngine() *Engine {
	return &Engine{}
}

// State returns a copy of the current search state.
func (e *Engine) State() State {
	s := e.state
	if s.LastMatch != nil {
		m := *s.LastMatch
		s.LastMatch = &m
	}
	return s
}

// Found returns the region to render with the "found" style.
func (e *Engine) Found() (Match, bool) {
	if e.state.LastMatch == nil {
		return Match{}, false
	}
	return *e.state.LastMatch, true
}

// ClearFound drops the "found" region.
func (e *Engine) ClearFound() {
	e.state.LastMatch = nil
}

// Find searches text for pattern starting at the character offset from.
//
// The search runs forward from from to the end of the text first; when that
// fails it wraps exactly once and searches the whole text from offset 0.
// An empty pattern is a no-op and reports no match. A miss leaves the state
// untouched.
func (e *Engine) Find(text, pattern string, caseSensitive bool, from int) (Match, bool) {
	if pattern == "" {
		return Match{}, false
	}

	re := compilePattern(pattern, caseSensitive)

	fromByte := byteOffset(text, from)
	m, ok := findFrom(re, text, fromByte)
	if !ok {
		m, ok = findFrom(re, text, 0)
		m.Wrapped = true
	}
	if !ok {
		return Match{}, false
	}

	e.state.Pattern = pattern
	e.state.CaseSensitive = caseSensitive
	found := m
	e.state.LastMatch = &found
	return m, true
}

// compilePattern builds a literal matcher; QuoteMeta output always compiles.
func compilePattern(pattern string, caseSensitive bool) *regexp.Regexp {
	expr := regexp.QuoteMeta(pattern)
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.MustCompile(expr)
}

// findFrom finds the first match starting at or after the byte offset from.
func findFrom(re *regexp.Regexp, text string, from int) (Match, bool) {
	loc := re.FindStringIndex(text[from:])
	if loc == nil {
		return Match{}, false
	}
	startByte := from + loc[0]
	endByte := from + loc[1]
	start := utf8.RuneCountInString(text[:startByte])
	end := start + utf8.RuneCountInString(text[startByte:endByte])
	return Match{Start: start, End: end}, true
}

// byteOffset converts a character offset to a byte offset, clamping to the
// bounds of text.
func byteOffset(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == offset {
			return i
		}
		n++
	}
	return len(text)
}
