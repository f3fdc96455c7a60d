package app

import (
	"unicode"
	"unicode/utf8"

	"github.com/turtleide/turtle/internal/renderer/backend"
)

// prompt is a one-line input shown in the status bar.
type prompt struct {
	label string
	input []rune
	pos   int

	// hint renders text shown after the input, recomputed each frame.
	hint func() string

	// confirm prompts submit on the first key instead of on Enter.
	confirm bool

	submit func(input string) error
}

func newPrompt(label, initial string, submit func(string) error) *prompt {
	input := []rune(initial)
	return &prompt{label: label, input: input, pos: len(input), submit: submit}
}

func newConfirm(label string, submit func(answer string) error) *prompt {
	return &prompt{label: label, confirm: true, submit: submit}
}

func (p *prompt) text() string { return string(p.input) }

func (p *prompt) hintText() string {
	if p.hint == nil {
		return ""
	}
	return p.hint()
}

// cursor returns the display offset of the caret within label+input.
func (p *prompt) cursor() int {
	return utf8.RuneCountInString(p.label) + p.pos
}

// promptResult is what a key did to a prompt.
type promptResult int

const (
	promptKeep promptResult = iota
	promptSubmit
	promptCancel
)

// handleKey edits the input. It reports whether the prompt should be
// submitted or cancelled.
func (p *prompt) handleKey(ev backend.Event) promptResult {
	if ev.Key == backend.KeyEscape || ev.Key == backend.KeyCtrlC {
		return promptCancel
	}
	if p.confirm {
		if ev.Key == backend.KeyRune {
			p.input = []rune{unicode.ToLower(ev.Rune)}
			return promptSubmit
		}
		return promptKeep
	}

	switch ev.Key {
	case backend.KeyEnter:
		return promptSubmit
	case backend.KeyBackspace:
		if p.pos > 0 {
			p.input = append(p.input[:p.pos-1], p.input[p.pos:]...)
			p.pos--
		}
	case backend.KeyDelete:
		if p.pos < len(p.input) {
			p.input = append(p.input[:p.pos], p.input[p.pos+1:]...)
		}
	case backend.KeyLeft:
		p.pos = max(p.pos-1, 0)
	case backend.KeyRight:
		p.pos = min(p.pos+1, len(p.input))
	case backend.KeyHome, backend.KeyCtrlA:
		p.pos = 0
	case backend.KeyEnd, backend.KeyCtrlE:
		p.pos = len(p.input)
	case backend.KeyCtrlU:
		p.input = p.input[:0]
		p.pos = 0
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModAlt) || ev.Mod.Has(backend.ModCtrl) {
			return promptKeep
		}
		p.input = append(p.input[:p.pos], append([]rune{ev.Rune}, p.input[p.pos:]...)...)
		p.pos++
	}
	return promptKeep
}
