package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/turtleide/turtle/internal/config"
	"github.com/turtleide/turtle/internal/integration/process"
	"github.com/turtleide/turtle/internal/project/filestore"
	"github.com/turtleide/turtle/internal/renderer"
	"github.com/turtleide/turtle/internal/renderer/backend"
	"github.com/turtleide/turtle/internal/renderer/statusline"
)

const statusRow = 9

func newTestLoop(t *testing.T, s *EditorSession) (*Loop, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(100, 10)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	l := NewLoop(s, b, renderer.New(b, renderer.DefaultOptions()), nil)
	l.Render()
	return l, b
}

func keyEvent(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func runeEvent(r rune, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r, Mod: mod}
}

func press(t *testing.T, l *Loop, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		if err := l.HandleEvent(ev); err != nil {
			t.Fatalf("HandleEvent(%+v): %v", ev, err)
		}
	}
}

func typeText(t *testing.T, l *Loop, text string) {
	t.Helper()
	for _, r := range text {
		press(t, l, runeEvent(r, 0))
	}
}

func message(s *EditorSession) string {
	msg, _ := s.StatusLine().Message()
	return msg
}

func TestLoopTyping(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)

	typeText(t, l, "x = 1")
	press(t, l, keyEvent(backend.KeyEnter), keyEvent(backend.KeyTab), runeEvent('z', backend.ModCtrl))

	if got := s.Buffer().Text(); got != "x = 1\n\t" {
		t.Errorf("text = %q", got)
	}
	if b.Title() != "*Untitled - TurtleIDE" {
		t.Errorf("title = %q", b.Title())
	}

	press(t, l, keyEvent(backend.KeyBackspace), keyEvent(backend.KeyBackspace), keyEvent(backend.KeyHome), keyEvent(backend.KeyDelete))
	if got := s.Buffer().Text(); got != " = 1" {
		t.Errorf("text after deletes = %q", got)
	}
}

func TestLoopRender(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)

	typeText(t, l, "def f")
	l.Render()

	if got := b.RowText(0); !strings.HasPrefix(got, "  1 def f") {
		t.Errorf("row 0 = %q", got)
	}
	status := b.RowText(statusRow)
	for _, want := range []string{"Python", "Ln 1, Col 5", "Theme: Dark"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
	if x, y, visible := b.CursorPosition(); !visible || x != 9 || y != 0 {
		t.Errorf("cursor = (%d,%d,%v), want (9,0,true)", x, y, visible)
	}
}

func TestLoopFind(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)
	typeText(t, l, "foo Foo foo")

	press(t, l, keyEvent(backend.KeyCtrlF))
	if !s.StatusLine().Prompting() {
		t.Fatal("Ctrl+F should open the find prompt")
	}
	l.Render()
	if row := b.RowText(statusRow); !strings.Contains(row, "Find: ") || !strings.Contains(row, "[ ] Match case") {
		t.Errorf("status row = %q", row)
	}

	typeText(t, l, "foo")
	press(t, l, keyEvent(backend.KeyEnter))
	if s.StatusLine().Prompting() {
		t.Error("Enter should close the prompt")
	}
	m, ok := s.Found()
	if !ok || m.Start != 0 || !m.Wrapped {
		t.Fatalf("found = %+v,%v; want wrapped match at 0", m, ok)
	}

	press(t, l, keyEvent(backend.KeyF3))
	if m, _ := s.Found(); m.Start != 4 {
		t.Errorf("F3 should find the next match case-insensitively, got %+v", m)
	}

	press(t, l, keyEvent(backend.KeyCtrlF), runeEvent('c', backend.ModAlt))
	if !l.caseSensitive {
		t.Error("Alt+C should toggle case sensitivity")
	}
	l.Render()
	if row := b.RowText(statusRow); !strings.Contains(row, "Find: foo") || !strings.Contains(row, "[x] Match case") {
		t.Errorf("status row = %q", row)
	}
	press(t, l, keyEvent(backend.KeyEnter))
	if m, _ := s.Found(); m.Start != 8 {
		t.Errorf("case-sensitive find should skip Foo, got %+v", m)
	}
}

func TestLoopPromptCancel(t *testing.T) {
	s := newTestSession(t, nil)
	l, _ := newTestLoop(t, s)

	press(t, l, keyEvent(backend.KeyCtrlF), runeEvent('a', 0), keyEvent(backend.KeyEscape))
	if l.prompt != nil || s.StatusLine().Prompting() {
		t.Error("Esc should close the prompt")
	}
	if message(s) != "Cancelled" {
		t.Errorf("message = %q", message(s))
	}
	if s.Buffer().Text() != "" {
		t.Error("prompt input must not reach the document")
	}
}

func TestLoopQuit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		answers  []backend.Event
		wantQuit bool
	}{
		{"clean", "", nil, true},
		{"discard", "x", []backend.Event{runeEvent('N', 0)}, true},
		{"cancel", "x", []backend.Event{keyEvent(backend.KeyEscape)}, false},
		{"other key", "x", []backend.Event{runeEvent('q', 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, nil)
			l, _ := newTestLoop(t, s)
			typeText(t, l, tt.text)

			err := l.HandleEvent(keyEvent(backend.KeyCtrlQ))
			for _, ev := range tt.answers {
				if err != nil {
					break
				}
				err = l.HandleEvent(ev)
			}

			if got := errors.Is(err, ErrQuit); got != tt.wantQuit {
				t.Errorf("quit = %v (err %v), want %v", got, err, tt.wantQuit)
			}
			if !tt.wantQuit && l.prompt != nil {
				t.Error("prompt should be closed")
			}
		})
	}
}

func TestLoopQuitSavesFirst(t *testing.T) {
	mem := filestore.NewMemFS()
	s := newTestSession(t, mem)
	l, _ := newTestLoop(t, s)
	typeText(t, l, "print(1)")

	press(t, l, keyEvent(backend.KeyCtrlQ), runeEvent('y', 0))
	if l.prompt == nil || l.prompt.label != "Save as: " {
		t.Fatal("answering y on an untitled document should ask for a path")
	}
	typeText(t, l, "/w/quit.py")
	if err := l.HandleEvent(keyEvent(backend.KeyEnter)); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit after saving, got %v", err)
	}

	data, err := mem.ReadFile("/w/quit.py")
	if err != nil || string(data) != "print(1)" {
		t.Errorf("saved = %q, %v", data, err)
	}
}

func TestLoopSaveAs(t *testing.T) {
	mem := filestore.NewMemFS()
	s := newTestSession(t, mem)
	l, b := newTestLoop(t, s)
	typeText(t, l, "a { }")

	press(t, l, keyEvent(backend.KeyCtrlS))
	typeText(t, l, "/w/site.css")
	press(t, l, keyEvent(backend.KeyEnter))

	if s.Path() != "/w/site.css" || s.Modified() {
		t.Fatalf("path %q modified %v", s.Path(), s.Modified())
	}
	if b.Title() != "site.css - TurtleIDE" {
		t.Errorf("title = %q", b.Title())
	}
	if s.Status().Language != "CSS" {
		t.Errorf("language = %q", s.Status().Language)
	}

	typeText(t, l, "!")
	press(t, l, keyEvent(backend.KeyCtrlS))
	if l.prompt != nil {
		t.Error("saving a named document should not prompt")
	}
	if data, _ := mem.ReadFile("/w/site.css"); string(data) != "a { }!" {
		t.Errorf("saved = %q", data)
	}
}

func TestLoopSaveAsNamedDocument(t *testing.T) {
	mem := filestore.NewMemFS()
	if err := mem.WriteFile("/w/app.py", []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, mem)
	if err := s.Open("/w/app.py"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	l, b := newTestLoop(t, s)

	press(t, l, keyEvent(backend.KeyCtrlW))
	if l.prompt == nil || l.prompt.text() != "/w/app.py" {
		t.Fatalf("save-as prompt should start from the current path, got %+v", l.prompt)
	}
	press(t, l, keyEvent(backend.KeyBackspace), keyEvent(backend.KeyBackspace))
	typeText(t, l, "js")
	press(t, l, keyEvent(backend.KeyEnter))

	if s.Path() != "/w/app.js" || s.Modified() {
		t.Fatalf("path %q modified %v", s.Path(), s.Modified())
	}
	if b.Title() != "app.js - TurtleIDE" {
		t.Errorf("title = %q", b.Title())
	}
	if s.Status().Language != "JavaScript" {
		t.Errorf("language = %q", s.Status().Language)
	}
	if data, _ := mem.ReadFile("/w/app.js"); string(data) != "x = 1" {
		t.Errorf("saved = %q", data)
	}
	if data, _ := mem.ReadFile("/w/app.py"); string(data) != "x = 1" {
		t.Errorf("original file changed: %q", data)
	}

	press(t, l, keyEvent(backend.KeyCtrlW), keyEvent(backend.KeyEscape))
	if s.Path() != "/w/app.js" {
		t.Errorf("cancelled save-as changed the path to %q", s.Path())
	}
}

func TestLoopOpen(t *testing.T) {
	mem := filestore.NewMemFS()
	if err := mem.WriteFile("/w/b.js", []byte("let x = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, mem)
	l, b := newTestLoop(t, s)

	press(t, l, keyEvent(backend.KeyCtrlO))
	typeText(t, l, "/w/b.js")
	press(t, l, keyEvent(backend.KeyEnter))

	if s.Status().Language != "JavaScript" || s.Buffer().Text() != "let x = 1;" {
		t.Errorf("open failed: language %q text %q", s.Status().Language, s.Buffer().Text())
	}
	if b.Title() != "b.js - TurtleIDE" {
		t.Errorf("title = %q", b.Title())
	}

	press(t, l, keyEvent(backend.KeyCtrlO))
	if got := l.prompt.text(); got != "/w/" {
		t.Errorf("open prompt should start in the file's directory, got %q", got)
	}
	typeText(t, l, "missing.js")
	press(t, l, keyEvent(backend.KeyEnter))

	if _, typ := s.StatusLine().Message(); typ != statusline.MessageError {
		t.Errorf("missing file should show an error, got %q", message(s))
	}
	if b.BeepCount() != 1 {
		t.Errorf("beeps = %d, want 1", b.BeepCount())
	}
	if s.Path() != "/w/b.js" {
		t.Error("failed open must keep the current document")
	}
}

func TestLoopNewFile(t *testing.T) {
	s := newTestSession(t, nil)
	l, _ := newTestLoop(t, s)
	typeText(t, l, "junk")

	press(t, l, keyEvent(backend.KeyCtrlN), runeEvent('n', 0))
	if s.Buffer().Text() != "" || s.Modified() {
		t.Error("Ctrl+N then n should discard the document")
	}
}

func TestLoopThemeAndLanguage(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)

	press(t, l, keyEvent(backend.KeyCtrlT))
	if s.Status().Theme != "Theme: Light" {
		t.Errorf("theme = %q", s.Status().Theme)
	}
	l.Render()
	if row := b.RowText(statusRow); !strings.Contains(row, "Switched to Theme: Light") {
		t.Errorf("status row = %q", row)
	}

	press(t, l, keyEvent(backend.KeyCtrlL))
	if s.Status().Language != "Batch" {
		t.Errorf("language = %q", s.Status().Language)
	}
}

func TestLoopMouse(t *testing.T) {
	s := newTestSession(t, nil)
	l, _ := newTestLoop(t, s)
	s.InsertText("def foo():\n    return 1")
	l.Render()

	press(t, l, backend.Event{Type: backend.EventMouse, MouseButton: backend.MouseLeft, MouseX: 10, MouseY: 1})
	if got := s.Status().Cursor; got != "Ln 2, Col 6" {
		t.Errorf("click moved cursor to %q", got)
	}

	s.InsertText(strings.Repeat("\nx", 30))
	s.SetInsertion(0)
	press(t, l, backend.Event{Type: backend.EventMouse, MouseButton: backend.MouseWheelDown})
	if top := s.Viewport().TopLine(); top != 3 {
		t.Errorf("wheel down top = %d, want 3", top)
	}
	press(t, l, backend.Event{Type: backend.EventMouse, MouseButton: backend.MouseWheelUp})
	if top := s.Viewport().TopLine(); top != 0 {
		t.Errorf("wheel up top = %d, want 0", top)
	}
}

func TestLoopResize(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)

	b.Resize(80, 20)
	press(t, l, b.PollEvent())

	if w, h := s.Viewport().Width(), s.Viewport().Height(); w != 76 || h != 19 {
		t.Errorf("view = %dx%d, want 76x19", w, h)
	}
}

func TestLoopPostConfig(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)

	cfg := config.Default()
	cfg.Editor.Theme = "light"
	l.PostConfig(cfg)
	ev := b.PollEvent()
	if ev.Type != backend.EventInterrupt {
		t.Fatalf("event type = %v, want interrupt", ev.Type)
	}
	press(t, l, ev)
	if s.Status().Theme != "Theme: Light" || message(s) != "Configuration reloaded" {
		t.Errorf("theme %q message %q", s.Status().Theme, message(s))
	}

	cfg.Editor.TabWidth = 99
	l.PostConfig(cfg)
	press(t, l, b.PollEvent())
	if !strings.HasPrefix(message(s), "Config error") {
		t.Errorf("message = %q", message(s))
	}

	press(t, l, backend.Event{Type: backend.EventInterrupt})
	if !strings.HasPrefix(message(s), "Config error") {
		t.Error("an interrupt without pending settings should do nothing")
	}
}

func TestLoopRunWithoutPathPromptsForSave(t *testing.T) {
	s := newTestSession(t, nil)
	l, _ := newTestLoop(t, s)

	press(t, l, keyEvent(backend.KeyF5))
	if l.prompt == nil || l.prompt.label != "Save as: " {
		t.Fatal("F5 on an untitled document should ask for a path")
	}
}

func TestLoopRunUnsupported(t *testing.T) {
	mem := filestore.NewMemFS()
	s := newTestSession(t, mem)
	if err := s.SaveAs("/w/notes.txt"); err != nil {
		t.Fatal(err)
	}
	l, b := newTestLoop(t, s)

	press(t, l, keyEvent(backend.KeyF5))
	if l.output != nil {
		t.Error("no output pane expected")
	}
	if !strings.Contains(message(s), "only Python and batch files") || b.BeepCount() != 1 {
		t.Errorf("message %q beeps %d", message(s), b.BeepCount())
	}
}

func TestLoopRunShowsOutput(t *testing.T) {
	requireShell(t)

	path := filepath.Join(t.TempDir(), "hello.py")
	if err := os.WriteFile(path, []byte("echo out\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewEditorSession(SessionOptions{
		Config: config.Default(),
		Runner: process.NewRunner(process.Config{Python: "sh"}),
		Width:  40,
		Height: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	l, b := newTestLoop(t, s)

	press(t, l, keyEvent(backend.KeyF5))
	if l.output == nil {
		t.Fatalf("F5 should show the output pane, message %q", message(s))
	}
	l.Render()
	if got := b.RowText(0); !strings.HasPrefix(got, "out") {
		t.Errorf("row 0 = %q", got)
	}
	if got := b.RowText(3); !strings.Contains(got, "Process completed with exit code: 0") {
		t.Errorf("row 3 = %q", got)
	}
	if got := b.RowText(statusRow); !strings.Contains(got, "Output: hello.py") {
		t.Errorf("status row = %q", got)
	}

	press(t, l, runeEvent('x', 0))
	if s.Buffer().Text() != "echo out\n" {
		t.Error("keys must not reach the document while the output pane is shown")
	}
	press(t, l, keyEvent(backend.KeyEscape))
	if l.output != nil {
		t.Error("Esc should close the output pane")
	}
}

func TestLoopRun(t *testing.T) {
	s := newTestSession(t, nil)
	b := backend.NewNullBackend(60, 10)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	l := NewLoop(s, b, renderer.New(b, renderer.DefaultOptions()), nil)

	for _, ev := range []backend.Event{
		runeEvent('h', 0),
		runeEvent('i', 0),
		keyEvent(backend.KeyCtrlQ),
		runeEvent('n', 0),
	} {
		b.PostEvent(ev)
	}

	if err := l.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Buffer().Text() != "hi" {
		t.Errorf("text = %q", s.Buffer().Text())
	}
	if b.ShowCount() != 4 {
		t.Errorf("frames = %d, want 4", b.ShowCount())
	}
}

func TestLoopQuitFromAnotherGoroutine(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)
	typeText(t, l, "unsaved")

	done := make(chan error, 1)
	go func() { done <- l.Run() }()
	l.Quit()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	if b.Title() != "*Untitled - TurtleIDE" {
		t.Errorf("title = %q", b.Title())
	}
}

func TestLoopUndoRedo(t *testing.T) {
	s := newTestSession(t, nil)
	l, b := newTestLoop(t, s)

	typeText(t, l, "abc")
	press(t, l, keyEvent(backend.KeyCtrlZ))
	if s.Buffer().Text() != "" {
		t.Errorf("Ctrl+Z text = %q", s.Buffer().Text())
	}
	press(t, l, keyEvent(backend.KeyCtrlY))
	if s.Buffer().Text() != "abc" {
		t.Errorf("Ctrl+Y text = %q", s.Buffer().Text())
	}
	if b.Title() != "*Untitled - TurtleIDE" {
		t.Errorf("title = %q", b.Title())
	}
}
