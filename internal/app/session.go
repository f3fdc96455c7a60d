package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/turtleide/turtle/internal/config"
	"github.com/turtleide/turtle/internal/engine/buffer"
	"github.com/turtleide/turtle/internal/engine/cursor"
	"github.com/turtleide/turtle/internal/engine/history"
	"github.com/turtleide/turtle/internal/engine/search"
	"github.com/turtleide/turtle/internal/integration/process"
	"github.com/turtleide/turtle/internal/project/filestore"
	"github.com/turtleide/turtle/internal/renderer/gutter"
	"github.com/turtleide/turtle/internal/renderer/highlight"
	"github.com/turtleide/turtle/internal/renderer/statusline"
	"github.com/turtleide/turtle/internal/renderer/viewport"
)

// ProductName appears in the window title.
const ProductName = "TurtleIDE"

// Untitled is the display name of a file that has never been saved.
const Untitled = "Untitled"

// Status is the text of the right-hand status segments.
type Status struct {
	Language string
	Cursor   string
	Theme    string
}

// SessionOptions configures an EditorSession. Nil fields take defaults.
type SessionOptions struct {
	Config   config.Config
	Registry *highlight.Registry
	Store    *filestore.Store
	Runner   *process.Runner
	Logger   *Logger

	// Width and Height are the initial text area size in cells.
	Width, Height int
}

// EditorSession is one open document together with everything derived
// from it: highlighting, the line number gutter, the cursor label, and the
// search state. All methods must be called from a single goroutine.
//
// Editing methods never fail. Session actions that touch the file system
// or start processes return *OperationError.
type EditorSession struct {
	cfg    config.Config
	logger *Logger

	buf      *buffer.Buffer
	registry *highlight.Registry
	profile  highlight.Profile
	theme    *highlight.Theme

	highlighter *highlight.Provider
	search      *search.Engine
	history     *history.History
	gutter      *gutter.Gutter
	view        *viewport.Viewport
	tracker     *cursor.Tracker
	cursor      cursor.Cursor
	status      *statusline.StatusLine

	store  *filestore.Store
	runner *process.Runner

	path     string
	modified bool
}

// NewEditorSession creates a session holding an empty untitled document.
func NewEditorSession(opts SessionOptions) (*EditorSession, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	theme, err := highlight.ThemeByName(opts.Config.Editor.Theme)
	if err != nil {
		return nil, err
	}

	s := &EditorSession{
		cfg:      opts.Config,
		logger:   opts.Logger,
		buf:      buffer.NewBuffer(),
		registry: opts.Registry,
		theme:    theme,
		search:   search.NewEngine(),
		history:  history.NewHistory(history.DefaultMaxEntries),
		gutter: gutter.New(gutter.Config{
			ShowLineNumbers:    opts.Config.Editor.ShowLineNumbers,
			MinLineNumberWidth: gutter.DefaultConfig().MinLineNumberWidth,
		}),
		view:   viewport.NewViewport(opts.Width, opts.Height),
		status: statusline.New(),
		store:  opts.Store,
		runner: opts.Runner,
	}
	if s.logger == nil {
		s.logger = NullLogger
	}
	s.logger = s.logger.WithComponent("session")
	if s.registry == nil {
		s.registry = highlight.DefaultRegistry()
	}
	if s.store == nil {
		s.store = filestore.NewStore(nil)
	}
	if s.runner == nil {
		s.runner = newRunner(opts.Config.Run)
	}
	s.tracker = cursor.NewTracker(s.buf)
	s.profile = s.defaultProfile()
	s.highlighter = highlight.NewProvider(s.profile, s.theme)

	s.refresh()
	return s, nil
}

func newRunner(cfg config.RunConfig) *process.Runner {
	return process.NewRunner(process.Config{Python: cfg.Python, Terminals: cfg.Terminals})
}

func (s *EditorSession) defaultProfile() highlight.Profile {
	return s.registry.ProfileFor(s.cfg.Editor.DefaultLanguage)
}

// Accessors

// Buffer returns the document buffer.
func (s *EditorSession) Buffer() *buffer.Buffer { return s.buf }

// Highlighter returns the highlight provider for the document.
func (s *EditorSession) Highlighter() *highlight.Provider { return s.highlighter }

// Gutter returns the line number gutter.
func (s *EditorSession) Gutter() *gutter.Gutter { return s.gutter }

// Viewport returns the text area view.
func (s *EditorSession) Viewport() *viewport.Viewport { return s.view }

// StatusLine returns the status bar model.
func (s *EditorSession) StatusLine() *statusline.StatusLine { return s.status }

// Theme returns the active theme.
func (s *EditorSession) Theme() *highlight.Theme { return s.theme }

// Profile returns the active language profile.
func (s *EditorSession) Profile() highlight.Profile { return s.profile }

// Config returns the settings the session was built with.
func (s *EditorSession) Config() config.Config { return s.cfg }

// Path returns the file path, empty for an untitled document.
func (s *EditorSession) Path() string { return s.path }

// Modified reports whether the document has unsaved edits.
func (s *EditorSession) Modified() bool { return s.modified }

// Insertion returns the insertion offset.
func (s *EditorSession) Insertion() int { return s.cursor.Offset() }

// Position returns the insertion point as a line and column.
func (s *EditorSession) Position() buffer.Position {
	return s.tracker.Position(s.cursor.Offset())
}

// Found returns the match shown with the found style, if any.
func (s *EditorSession) Found() (search.Match, bool) { return s.search.Found() }

// SearchState returns the last successful search.
func (s *EditorSession) SearchState() search.State { return s.search.State() }

// Name returns the base name of the file, or Untitled.
func (s *EditorSession) Name() string {
	if s.path == "" {
		return Untitled
	}
	return filepath.Base(s.path)
}

// Title returns the window title, e.g. "*hello.py - TurtleIDE".
func (s *EditorSession) Title() string {
	mark := ""
	if s.modified {
		mark = "*"
	}
	return fmt.Sprintf("%s%s - %s", mark, s.Name(), ProductName)
}

// Status returns the language, cursor and theme labels.
func (s *EditorSession) Status() Status {
	seg := s.status.Segments()
	return Status{Language: seg[0], Cursor: seg[1], Theme: seg[2]}
}

// File actions

// NewFile discards the document and starts an untitled one in the default
// language.
func (s *EditorSession) NewFile() {
	s.buf.Load("")
	s.history.Clear()
	s.path = ""
	s.modified = false
	s.cursor = cursor.NewCursor(0)
	s.view.ScrollTo(0)
	s.setProfile(s.defaultProfile())
	s.refresh()
	s.status.SetMessage("New file", statusline.MessageInfo)
	s.logger.Debug("new file")
}

// Open loads path. The language follows the file extension, or the default
// language when the extension is not registered.
func (s *EditorSession) Open(path string) error {
	text, err := s.store.Read(path)
	if err != nil {
		s.logger.Warn("open failed: %v", err)
		return NewOperationError("open", path, err)
	}

	s.buf.Load(text)
	s.history.Clear()
	s.path = path
	s.modified = false
	s.cursor = cursor.NewCursor(0)
	s.view.ScrollTo(0)

	profile, ok := s.registry.Lookup(filepath.Ext(path))
	if !ok {
		profile = s.defaultProfile()
	}
	s.setProfile(profile)
	s.refresh()

	s.status.SetMessage("Opened: "+s.Name(), statusline.MessageInfo)
	s.logger.WithField("language", profile.Label()).Info("opened %s", path)
	return nil
}

// Save writes the document to its path.
func (s *EditorSession) Save() error {
	if s.path == "" {
		return NewOperationError("save", "", ErrNoFilePath)
	}
	if err := s.store.Write(s.path, s.buf.Text()); err != nil {
		s.logger.Warn("save failed: %v", err)
		return NewOperationError("save", s.path, err)
	}
	s.modified = false
	s.status.SetMessage("Saved: "+s.Name(), statusline.MessageInfo)
	s.logger.Info("saved %s", s.path)
	return nil
}

// SaveAs writes the document to path and makes it the document's path.
// The language switches when the new extension is registered.
func (s *EditorSession) SaveAs(path string) error {
	if err := s.store.Write(path, s.buf.Text()); err != nil {
		s.logger.Warn("save as failed: %v", err)
		return NewOperationError("save", path, err)
	}
	s.path = path
	s.modified = false
	if profile, ok := s.registry.Lookup(filepath.Ext(path)); ok && profile.Extension != s.profile.Extension {
		s.setProfile(profile)
		s.refresh()
	}
	s.status.SetMessage("Saved: "+s.Name(), statusline.MessageInfo)
	s.logger.Info("saved %s", path)
	return nil
}

// Language and theme

// SetLanguage switches highlighting to the profile registered for ext.
func (s *EditorSession) SetLanguage(ext string) error {
	profile, ok := s.registry.Lookup(ext)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, ext)
	}
	s.setProfile(profile)
	s.refresh()
	return nil
}

// CycleLanguage switches to the next registered extension.
func (s *EditorSession) CycleLanguage() {
	exts := s.registry.Extensions()
	next := (slices.Index(exts, s.profile.Extension) + 1) % len(exts)
	_ = s.SetLanguage(exts[next])
}

// SetTheme switches to the named theme.
func (s *EditorSession) SetTheme(name string) error {
	theme, err := highlight.ThemeByName(name)
	if err != nil {
		return err
	}
	s.theme = theme
	s.highlighter.SetTheme(theme)
	s.refresh()
	return nil
}

// ToggleTheme switches between the dark and light themes.
func (s *EditorSession) ToggleTheme() {
	_ = s.SetTheme(s.theme.Other())
	s.status.SetMessage("Switched to "+s.theme.Label(), statusline.MessageInfo)
}

func (s *EditorSession) setProfile(p highlight.Profile) {
	s.profile = p
	s.highlighter.SetProfile(p)
}

// Editing

// InsertText inserts text at the insertion point and moves past it.
func (s *EditorSession) InsertText(text string) {
	if text == "" {
		return
	}
	at := s.clamped()
	op := history.NewInsertOperation(at, text)
	s.apply("insert", op.WithCursors(at, op.NewEnd()))
}

// Backspace deletes the character before the insertion point.
func (s *EditorSession) Backspace() {
	at := s.clamped()
	if at == 0 {
		return
	}
	deleted, err := s.buf.TextRange(at-1, at)
	if err != nil {
		s.logger.Error("backspace: %v", err)
		return
	}
	s.apply("backspace", history.NewDeleteOperation(at-1, deleted).WithCursors(at, at-1))
}

// DeleteForward deletes the character after the insertion point.
func (s *EditorSession) DeleteForward() {
	at := s.clamped()
	if at >= s.buf.Len() {
		return
	}
	deleted, err := s.buf.TextRange(at, at+1)
	if err != nil {
		s.logger.Error("delete: %v", err)
		return
	}
	s.apply("delete", history.NewDeleteOperation(at, deleted).WithCursors(at, at))
}

// Undo reverts the last group of edits.
func (s *EditorSession) Undo() {
	at, err := s.history.Undo(s.buf)
	if err != nil {
		s.historyFailed("undo", err)
		return
	}
	s.cursor = cursor.NewCursor(at)
	s.edited()
}

// Redo reapplies the last undone group of edits.
func (s *EditorSession) Redo() {
	at, err := s.history.Redo(s.buf)
	if err != nil {
		s.historyFailed("redo", err)
		return
	}
	s.cursor = cursor.NewCursor(at)
	s.edited()
}

// CanUndo reports whether there are edits to undo.
func (s *EditorSession) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether there are undone edits to redo.
func (s *EditorSession) CanRedo() bool { return s.history.CanRedo() }

func (s *EditorSession) historyFailed(op string, err error) {
	if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
		s.status.SetMessage(capitalize(err.Error()), statusline.MessageInfo)
		return
	}
	s.logger.Error("%s: %v", op, err)
}

func (s *EditorSession) apply(op string, o *history.Operation) {
	if err := s.history.Apply(s.buf, o); err != nil {
		s.logger.Error("%s: %v", op, err)
		return
	}
	s.cursor = cursor.NewCursor(o.CursorAfter)
	s.edited()
}

func (s *EditorSession) clamped() int {
	return s.cursor.Clamp(s.buf.Len()).Offset()
}

func (s *EditorSession) edited() {
	s.modified = true
	s.refresh()
}

// Movement

// SetInsertion moves the insertion point to offset, clamped to the
// document.
func (s *EditorSession) SetInsertion(offset int) {
	s.cursor = cursor.NewCursor(offset).Clamp(s.buf.Len())
	s.history.Separate()
	s.follow()
}

// SetInsertionPosition moves the insertion point to a line and column.
func (s *EditorSession) SetInsertionPosition(pos buffer.Position) {
	off, err := s.buf.PositionToOffset(pos)
	if err != nil {
		return
	}
	s.SetInsertion(off)
}

// MoveLeft moves the insertion point one character back.
func (s *EditorSession) MoveLeft() { s.move(s.cursor.Left(s.buf)) }

// MoveRight moves the insertion point one character forward.
func (s *EditorSession) MoveRight() { s.move(s.cursor.Right(s.buf)) }

// MoveUp moves the insertion point to the previous line.
func (s *EditorSession) MoveUp() { s.move(s.cursor.Up(s.buf)) }

// MoveDown moves the insertion point to the next line.
func (s *EditorSession) MoveDown() { s.move(s.cursor.Down(s.buf)) }

// Home moves the insertion point to the start of the line.
func (s *EditorSession) Home() { s.move(s.cursor.Home(s.buf)) }

// End moves the insertion point to the end of the line.
func (s *EditorSession) End() { s.move(s.cursor.End(s.buf)) }

// PageUp moves the insertion point up by one screen.
func (s *EditorSession) PageUp() {
	c := s.cursor
	for i, n := 0, max(s.view.Height()-1, 1); i < n; i++ {
		c = c.Up(s.buf)
	}
	s.move(c)
}

// PageDown moves the insertion point down by one screen.
func (s *EditorSession) PageDown() {
	c := s.cursor
	for i, n := 0, max(s.view.Height()-1, 1); i < n; i++ {
		c = c.Down(s.buf)
	}
	s.move(c)
}

// move places the cursor after a key press. As with any key release the
// found overlay is dropped.
func (s *EditorSession) move(c cursor.Cursor) {
	s.cursor = c
	s.history.Separate()
	s.search.ClearFound()
	s.follow()
}

// View

// Scroll places line top (0-based) of total lines at the top of the view
// and re-syncs the gutter.
func (s *EditorSession) Scroll(top, total int) {
	s.view.ScrollTo(top)
	s.gutter.Sync(s.buf.LineCount(), gutter.ScrollFraction(top, total))
}

// ScrollBy scrolls the view by delta lines.
func (s *EditorSession) ScrollBy(delta int) {
	s.view.ScrollBy(delta)
	s.Scroll(s.view.TopLine(), s.buf.LineCount())
}

// Resize sets the text area size.
func (s *EditorSession) Resize(width, height int) {
	s.view.Resize(width, height)
	s.follow()
}

// Search

// Find searches forward from the insertion point, wrapping once. On a
// match the insertion point moves to the end of the match.
func (s *EditorSession) Find(pattern string, caseSensitive bool) (search.Match, bool) {
	m, ok := s.search.Find(s.buf.Text(), pattern, caseSensitive, s.clamped())
	if !ok {
		if pattern != "" {
			s.status.SetMessage(fmt.Sprintf("Cannot find %q", pattern), statusline.MessageWarning)
		}
		return m, false
	}

	s.cursor = cursor.NewCursor(m.End)
	s.history.Separate()
	s.follow()
	msg := "Found: " + pattern
	if m.Wrapped {
		msg += " (wrapped)"
	}
	s.status.SetMessage(msg, statusline.MessageInfo)
	return m, true
}

// Running

// Run saves the document when modified, then runs it and waits for it to
// exit.
func (s *EditorSession) Run() (process.Result, error) {
	if err := s.saveForRun("run"); err != nil {
		return process.Result{}, err
	}

	res, err := s.runner.Run(s.path)
	log := s.logger.WithFields(map[string]any{"run": res.ID, "kind": res.Kind})
	if err != nil {
		log.Warn("run failed: %v", err)
		return res, NewOperationError("run", s.path, err)
	}
	log.WithField("exit", res.ExitCode).Info("executed %s in %s", s.path, res.Duration)
	s.status.SetMessage("Executed: "+s.Name(), statusline.MessageInfo)
	return res, nil
}

// RunInTerminal saves the document when modified, then opens it in an
// external terminal.
func (s *EditorSession) RunInTerminal() error {
	if err := s.saveForRun("run in terminal"); err != nil {
		return err
	}
	if err := s.runner.RunInTerminal(s.path); err != nil {
		s.logger.Warn("terminal launch failed: %v", err)
		return NewOperationError("run in terminal", s.path, err)
	}
	s.status.SetMessage("Launched in terminal: "+s.Name(), statusline.MessageInfo)
	return nil
}

func (s *EditorSession) saveForRun(op string) error {
	if s.path == "" {
		return NewOperationError(op, "", ErrNoFilePath)
	}
	if s.modified {
		return s.Save()
	}
	return nil
}

// ApplyConfig adopts new settings. The document and its language are kept.
func (s *EditorSession) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.runner = newRunner(cfg.Run)
	s.gutter = gutter.New(gutter.Config{
		ShowLineNumbers:    cfg.Editor.ShowLineNumbers,
		MinLineNumberWidth: gutter.DefaultConfig().MinLineNumberWidth,
	})
	return s.SetTheme(cfg.Editor.Theme)
}

// refresh re-derives everything from the document after a change of text,
// language or theme.
func (s *EditorSession) refresh() {
	s.search.ClearFound()
	s.highlighter.Refresh(s.buf)
	s.view.SetLineCount(s.buf.LineCount())
	s.status.SetLanguage(s.profile.Label())
	s.status.SetTheme(s.theme.Label())
	s.follow()
}

// follow keeps the insertion line in view and updates the gutter and the
// cursor label.
func (s *EditorSession) follow() {
	pos := s.tracker.Position(s.cursor.Offset())
	s.view.EnsureVisible(pos.Line-1, s.view.LeftColumn())
	s.gutter.Sync(s.buf.LineCount(), s.view.Fraction())
	s.status.SetCursor(s.tracker.Label(s.cursor.Offset()))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
