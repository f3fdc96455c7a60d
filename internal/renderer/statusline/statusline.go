// Package statusline provides the status bar and the find prompt.
package statusline

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultMessage is shown when no other message is set.
const DefaultMessage = "Ready"

// separator joins the right-hand segments.
const separator = "  |  "

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine holds the bottom bar: a message on the left and the language,
// cursor and theme labels on the right.
type StatusLine struct {
	message     string
	messageType MessageType

	language string
	cursor   string
	theme    string

	// Prompt state replaces the message while active.
	promptActive bool
	promptLabel  string
	promptInput  string
	promptHint   string
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{message: DefaultMessage}
}

// SetLanguage updates the language label, e.g. "Python".
func (s *StatusLine) SetLanguage(label string) {
	s.language = label
}

// SetCursor updates the cursor label, e.g. "Ln 1, Col 0".
func (s *StatusLine) SetCursor(label string) {
	s.cursor = label
}

// SetTheme updates the theme label, e.g. "Theme: Dark".
func (s *StatusLine) SetTheme(label string) {
	s.theme = label
}

// Segments returns the language, cursor and theme labels.
func (s *StatusLine) Segments() [3]string {
	return [3]string{s.language, s.cursor, s.theme}
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage restores the default message.
func (s *StatusLine) ClearMessage() {
	s.message = DefaultMessage
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// SetPrompt activates the input prompt, e.g. label "Find: ".
func (s *StatusLine) SetPrompt(label, input, hint string) {
	s.promptActive = true
	s.promptLabel = label
	s.promptInput = input
	s.promptHint = hint
}

// ClearPrompt deactivates the input prompt.
func (s *StatusLine) ClearPrompt() {
	s.promptActive = false
	s.promptLabel = ""
	s.promptInput = ""
	s.promptHint = ""
}

// Prompting reports whether the prompt is active.
func (s *StatusLine) Prompting() bool {
	return s.promptActive
}

// PromptCursor returns the display column of the prompt's input cursor.
func (s *StatusLine) PromptCursor() int {
	return uniseg.StringWidth(s.promptLabel) + uniseg.StringWidth(s.promptInput)
}

// Left returns the text shown on the left of the bar.
func (s *StatusLine) Left() string {
	if s.promptActive {
		left := s.promptLabel + s.promptInput
		if s.promptHint != "" {
			left += "  " + s.promptHint
		}
		return left
	}
	return s.message
}

// Right returns the joined non-empty segments.
func (s *StatusLine) Right() string {
	var parts []string
	for _, seg := range s.Segments() {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, separator)
}

// Render lays the bar out in exactly width display columns. The right-hand
// segments are kept whole when possible and the left text is truncated.
func (s *StatusLine) Render(width int) string {
	if width <= 0 {
		return ""
	}

	left, right := " "+s.Left(), s.Right()+" "
	rw := uniseg.StringWidth(right)
	if rw >= width {
		return Truncate(right, width)
	}

	left = Truncate(left, width-rw-1)
	lw := uniseg.StringWidth(left)
	return left + strings.Repeat(" ", width-lw-rw) + right
}

// Truncate shortens s to at most width display columns on grapheme cluster
// boundaries, padding with spaces when a wide cluster does not fit.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(strings.Repeat(" ", width-used))
	return b.String()
}
