package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/turtleide/turtle/internal/config"
	"github.com/turtleide/turtle/internal/renderer"
	"github.com/turtleide/turtle/internal/renderer/backend"
	"github.com/turtleide/turtle/internal/renderer/statusline"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// Loop translates backend events into session calls and repaints after
// each one. It holds no editing logic of its own.
type Loop struct {
	session  *EditorSession
	backend  backend.Backend
	renderer *renderer.Renderer
	logger   *Logger

	prompt        *prompt
	output        *outputPane
	caseSensitive bool
	lastFind      string

	// pending holds settings delivered from another goroutine until the
	// loop picks them up.
	pendingMu sync.Mutex
	pending   *config.Config
	quit      atomic.Bool

	title string
}

// NewLoop creates an event loop for session drawing onto b.
func NewLoop(session *EditorSession, b backend.Backend, r *renderer.Renderer, logger *Logger) *Loop {
	if logger == nil {
		logger = NullLogger
	}
	return &Loop{
		session:  session,
		backend:  b,
		renderer: r,
		logger:   logger.WithComponent("loop"),
	}
}

// Session returns the session the loop drives.
func (l *Loop) Session() *EditorSession {
	return l.session
}

// Run processes events until the user quits.
func (l *Loop) Run() error {
	l.updateTitle()
	l.Render()
	for {
		ev := l.backend.PollEvent()
		if err := l.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		l.Render()
	}
}

// PostConfig hands reloaded settings to the loop. It is safe to call from
// any goroutine; the settings are applied on the loop's goroutine.
func (l *Loop) PostConfig(cfg config.Config) {
	l.pendingMu.Lock()
	l.pending = &cfg
	l.pendingMu.Unlock()
	l.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// Quit makes Run return at the next event. It is safe to call from any
// goroutine. Unsaved changes are not offered for saving.
func (l *Loop) Quit() {
	l.quit.Store(true)
	l.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// HandleEvent processes one event. It returns ErrQuit when the
// application should exit.
func (l *Loop) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		l.fitView()
	case backend.EventKey:
		return l.handleKey(ev)
	case backend.EventMouse:
		l.handleMouse(ev)
	case backend.EventInterrupt:
		if l.quit.Load() {
			return ErrQuit
		}
		l.applyPending()
	}
	return nil
}

func (l *Loop) applyPending() {
	l.pendingMu.Lock()
	cfg := l.pending
	l.pending = nil
	l.pendingMu.Unlock()
	if cfg == nil {
		return
	}

	if err := l.session.ApplyConfig(*cfg); err != nil {
		l.logger.Warn("config not applied: %v", err)
		l.session.StatusLine().SetMessage("Config error: "+err.Error(), statusline.MessageError)
		return
	}
	l.renderer.SetTabWidth(cfg.Editor.TabWidth)
	l.fitView()
	l.session.StatusLine().SetMessage("Configuration reloaded", statusline.MessageInfo)
	l.logger.Info("configuration reloaded")
}

// Keys

func (l *Loop) handleKey(ev backend.Event) error {
	if l.output != nil {
		l.handleOutputKey(ev)
		return nil
	}
	if l.prompt != nil {
		return l.handlePromptKey(ev)
	}

	s := l.session
	s.StatusLine().ClearMessage()

	switch ev.Key {
	case backend.KeyCtrlQ:
		return l.confirmDiscard(func() error { return ErrQuit })
	case backend.KeyCtrlS:
		return l.save(nil)
	case backend.KeyCtrlW:
		return l.promptSaveAs(nil)
	case backend.KeyCtrlO:
		return l.confirmDiscard(l.promptOpen)
	case backend.KeyCtrlN:
		return l.confirmDiscard(func() error {
			s.NewFile()
			return nil
		})
	case backend.KeyCtrlF:
		l.promptFind()
	case backend.KeyF3:
		if l.lastFind != "" {
			s.Find(l.lastFind, l.caseSensitive)
		}
	case backend.KeyCtrlZ:
		s.Undo()
	case backend.KeyCtrlY:
		s.Redo()
	case backend.KeyCtrlT:
		s.ToggleTheme()
	case backend.KeyCtrlL:
		s.CycleLanguage()
	case backend.KeyF5:
		return l.run()
	case backend.KeyF6:
		return l.runInTerminal()

	case backend.KeyEnter:
		s.InsertText("\n")
	case backend.KeyTab:
		s.InsertText("\t")
	case backend.KeyBackspace:
		s.Backspace()
	case backend.KeyDelete:
		s.DeleteForward()
	case backend.KeyLeft:
		s.MoveLeft()
	case backend.KeyRight:
		s.MoveRight()
	case backend.KeyUp:
		s.MoveUp()
	case backend.KeyDown:
		s.MoveDown()
	case backend.KeyHome:
		s.Home()
	case backend.KeyEnd:
		s.End()
	case backend.KeyPageUp:
		s.PageUp()
	case backend.KeyPageDown:
		s.PageDown()
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return nil
		}
		s.InsertText(string(ev.Rune))
	default:
		return nil
	}

	l.followColumn()
	l.updateTitle()
	return nil
}

func (l *Loop) handleOutputKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyEnter, backend.KeyCtrlQ:
		l.output = nil
	case backend.KeyRune:
		if ev.Rune == 'q' {
			l.output = nil
		}
	case backend.KeyUp:
		l.output.scroll(-1)
	case backend.KeyDown:
		l.output.scroll(1)
	case backend.KeyPageUp:
		l.output.scroll(-l.output.view.Height())
	case backend.KeyPageDown:
		l.output.scroll(l.output.view.Height())
	}
}

func (l *Loop) handlePromptKey(ev backend.Event) error {
	p := l.prompt
	switch p.handleKey(ev) {
	case promptCancel:
		l.closePrompt()
		l.session.StatusLine().SetMessage("Cancelled", statusline.MessageInfo)
	case promptSubmit:
		l.closePrompt()
		return p.submit(p.text())
	default:
		if ev.Key == backend.KeyRune && ev.Mod.Has(backend.ModAlt) && (ev.Rune == 'c' || ev.Rune == 'C') {
			l.caseSensitive = !l.caseSensitive
		}
		l.showPrompt()
	}
	return nil
}

// Prompts

func (l *Loop) openPrompt(p *prompt) {
	l.prompt = p
	l.showPrompt()
}

func (l *Loop) showPrompt() {
	if l.prompt == nil {
		return
	}
	l.session.StatusLine().SetPrompt(l.prompt.label, l.prompt.text(), l.prompt.hintText())
}

func (l *Loop) closePrompt() {
	l.prompt = nil
	l.session.StatusLine().ClearPrompt()
}

func (l *Loop) promptFind() {
	p := newPrompt("Find: ", l.lastFind, func(pattern string) error {
		l.lastFind = pattern
		l.session.Find(pattern, l.caseSensitive)
		l.followColumn()
		return nil
	})
	p.hint = func() string {
		if l.caseSensitive {
			return "[x] Match case (Alt+C)"
		}
		return "[ ] Match case (Alt+C)"
	}
	l.openPrompt(p)
}

func (l *Loop) promptOpen() error {
	l.openPrompt(newPrompt("Open: ", l.defaultDir(), func(path string) error {
		if path == "" {
			return nil
		}
		if err := l.session.Open(path); err != nil {
			l.showError(err)
		}
		l.updateTitle()
		return nil
	}))
	return nil
}

// save writes the document, asking for a path when it has none, and
// continues with then on success.
func (l *Loop) save(then func() error) error {
	s := l.session
	if s.Path() == "" {
		return l.promptSaveAs(then)
	}

	if err := s.Save(); err != nil {
		l.showError(err)
		return nil
	}
	l.updateTitle()
	if then != nil {
		return then()
	}
	return nil
}

// promptSaveAs asks for a path, starting from the current one, and writes
// the document there.
func (l *Loop) promptSaveAs(then func() error) error {
	s := l.session
	initial := s.Path()
	if initial == "" {
		initial = l.defaultDir()
	}
	l.openPrompt(newPrompt("Save as: ", initial, func(path string) error {
		if path == "" {
			return nil
		}
		if err := s.SaveAs(path); err != nil {
			l.showError(err)
			return nil
		}
		l.updateTitle()
		if then != nil {
			return then()
		}
		return nil
	}))
	return nil
}

// confirmDiscard runs then, first offering to save unsaved changes.
func (l *Loop) confirmDiscard(then func() error) error {
	if !l.session.Modified() {
		return then()
	}
	label := fmt.Sprintf("Save changes to %s? (y/n, Esc cancels) ", l.session.Name())
	l.openPrompt(newConfirm(label, func(answer string) error {
		switch answer {
		case "y":
			return l.save(then)
		case "n":
			return then()
		default:
			l.session.StatusLine().SetMessage("Cancelled", statusline.MessageInfo)
			return nil
		}
	}))
	return nil
}

func (l *Loop) defaultDir() string {
	if p := l.session.Path(); p != "" {
		return filepath.Dir(p) + string(filepath.Separator)
	}
	return ""
}

// Running

func (l *Loop) run() error {
	s := l.session
	if s.Path() == "" {
		return l.save(l.run)
	}
	res, err := s.Run()
	if err != nil {
		l.showError(err)
		return nil
	}
	w, h := l.renderer.TextSize(s.Gutter())
	l.output = newOutputPane(res, s.Name(), w, h)
	l.updateTitle()
	return nil
}

func (l *Loop) runInTerminal() error {
	s := l.session
	if s.Path() == "" {
		return l.save(l.runInTerminal)
	}
	if err := s.RunInTerminal(); err != nil {
		l.showError(err)
	}
	l.updateTitle()
	return nil
}

func (l *Loop) showError(err error) {
	l.logger.Warn("%v", err)
	l.session.StatusLine().SetMessage(err.Error(), statusline.MessageError)
	l.backend.Beep()
}

// Mouse

func (l *Loop) handleMouse(ev backend.Event) {
	if l.output != nil {
		switch ev.MouseButton {
		case backend.MouseWheelUp:
			l.output.scroll(-wheelLines)
		case backend.MouseWheelDown:
			l.output.scroll(wheelLines)
		}
		return
	}

	s := l.session
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		s.ScrollBy(-wheelLines)
	case backend.MouseWheelDown:
		s.ScrollBy(wheelLines)
	case backend.MouseLeft:
		if l.prompt != nil {
			return
		}
		if pos, ok := l.renderer.ScreenToPosition(l.frame(), ev.MouseX, ev.MouseY); ok {
			s.SetInsertionPosition(pos)
			l.followColumn()
		}
	}
}

// Drawing

// Render paints the current state.
func (l *Loop) Render() {
	l.fitView()
	if l.output != nil {
		p := l.output
		l.renderer.Render(renderer.Frame{
			Doc:      p.doc,
			Theme:    l.session.Theme(),
			Viewport: p.view,
			Gutter:   p.gutter,
			Status:   p.status,
		})
		return
	}
	l.renderer.Render(l.frame())
}

func (l *Loop) frame() renderer.Frame {
	s := l.session
	f := renderer.Frame{
		Doc:      s.Buffer(),
		Spans:    s.Highlighter(),
		Theme:    s.Theme(),
		Viewport: s.Viewport(),
		Gutter:   s.Gutter(),
		Status:   s.StatusLine(),
		Cursor:   s.Position(),
	}
	if m, ok := s.Found(); ok {
		f.Found = &m
	}
	return f
}

// fitView resizes the text area when the screen or gutter width changed.
func (l *Loop) fitView() {
	s := l.session
	w, h := l.renderer.TextSize(s.Gutter())
	if vp := s.Viewport(); vp.Width() != w || vp.Height() != h {
		s.Resize(w, h)
		l.followColumn()
	}
	if l.output != nil {
		if l.output.view.Width() != w || l.output.view.Height() != h {
			l.output.resize(w, h)
		}
	}
}

// followColumn scrolls horizontally so the insertion point stays visible.
func (l *Loop) followColumn() {
	s := l.session
	pos := s.Position()
	text, err := s.Buffer().LineText(pos.Line)
	if err != nil {
		return
	}
	s.Viewport().EnsureVisible(pos.Line-1, l.renderer.VisualColumn(text, pos.Column))
}

func (l *Loop) updateTitle() {
	if t := l.session.Title(); t != l.title {
		l.title = t
		l.backend.SetTitle(t)
	}
}
