package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/turtleide/turtle/internal/config"
	"github.com/turtleide/turtle/internal/project/filestore"
	"github.com/turtleide/turtle/internal/renderer/backend"
)

func newTestApp(t *testing.T, opts Options) (*Application, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(80, 24)
	opts.Backend = b
	if opts.FileSystem == nil {
		opts.FileSystem = filestore.NewMemFS()
	}
	if opts.Config.Editor.TabWidth == 0 {
		opts.Config = config.Default()
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a, b
}

func TestNewApplication(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	if a.ID().String() == "" || a.Session() == nil || a.Loop().Session() != a.Session() {
		t.Fatal("application not wired")
	}
	if a.Session().Path() != "" || a.Session().Status().Language != "Python" {
		t.Error("application should start with an untitled Python document")
	}
}

func TestNewApplicationOpensFile(t *testing.T) {
	mem := filestore.NewMemFS()
	if err := mem.WriteFile("/w/a.js", []byte("var a;"), 0o644); err != nil {
		t.Fatal(err)
	}
	mem.Mkdir("/w/dir")

	tests := []struct {
		name    string
		file    string
		lang    string
		text    string
		message string
		wantErr error
	}{
		{name: "existing", file: "/w/a.js", lang: "JavaScript", text: "var a;", message: "Opened: a.js"},
		{name: "new file", file: "/w/new.cpp", lang: "C++", message: "New file: new.cpp"},
		{name: "new unknown extension", file: "/w/new.txt", lang: "Python", message: "New file: new.txt"},
		{name: "directory", file: "/w/dir", wantErr: filestore.ErrIsDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(Options{
				Config:     config.Default(),
				File:       tt.file,
				Backend:    backend.NewNullBackend(80, 24),
				FileSystem: mem,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			s := a.Session()
			if s.Path() != tt.file || s.Modified() {
				t.Errorf("path %q modified %v", s.Path(), s.Modified())
			}
			if s.Status().Language != tt.lang || s.Buffer().Text() != tt.text {
				t.Errorf("language %q text %q", s.Status().Language, s.Buffer().Text())
			}
			if message(s) != tt.message {
				t.Errorf("message = %q, want %q", message(s), tt.message)
			}
		})
	}
}

func TestNewApplicationInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.DefaultLanguage = ".rb"

	_, err := New(Options{Config: cfg, Backend: backend.NewNullBackend(80, 24)})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "init" {
		t.Errorf("expected init OperationError, got %v", err)
	}
}

func TestApplicationRun(t *testing.T) {
	a, b := newTestApp(t, Options{File: "/w/hello.py"})
	b.PostEvent(keyEvent(backend.KeyCtrlQ))

	if err := a.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.Title() != "hello.py - TurtleIDE" {
		t.Errorf("title = %q", b.Title())
	}
	if b.ShowCount() != 1 {
		t.Errorf("frames = %d, want 1", b.ShowCount())
	}
}

func TestApplicationWatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, b := newTestApp(t, Options{ConfigPath: path})
	if a.watcher == nil {
		t.Fatal("existing config file should be watched")
	}

	tmp := filepath.Join(dir, "config.toml.tmp")
	if err := os.WriteFile(tmp, []byte("[editor]\ntheme = \"light\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	events := make(chan backend.Event, 1)
	go func() { events <- b.PollEvent() }()
	select {
	case ev := <-events:
		if err := a.Loop().HandleEvent(ev); err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	if got := a.Session().Status().Theme; got != "Theme: Light" {
		t.Errorf("theme = %q", got)
	}
}

func TestApplicationWatchConfigMissing(t *testing.T) {
	a, _ := newTestApp(t, Options{ConfigPath: filepath.Join(t.TempDir(), "absent.toml")})
	if a.watcher != nil {
		t.Error("missing config file should not be watched")
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
