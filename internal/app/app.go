package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/turtleide/turtle/internal/config"
	"github.com/turtleide/turtle/internal/project/filestore"
	"github.com/turtleide/turtle/internal/renderer"
	"github.com/turtleide/turtle/internal/renderer/backend"
	"github.com/turtleide/turtle/internal/renderer/statusline"
)

// Options configures an Application.
type Options struct {
	// Config holds the settings to start with.
	Config config.Config

	// ConfigPath is watched for changes when set and present on disk.
	ConfigPath string

	// File is opened at startup when set. A path that does not exist yet
	// becomes the path of a new, empty document.
	File string

	// Backend draws the editor. Nil uses the terminal.
	Backend backend.Backend

	// FileSystem backs file reads and writes. Nil uses the OS.
	FileSystem filestore.FileSystem

	Logger *Logger
}

// Application owns the terminal, the editing session and the config
// watcher for one run of the editor.
type Application struct {
	id       uuid.UUID
	logger   *Logger
	backend  backend.Backend
	renderer *renderer.Renderer
	session  *EditorSession
	loop     *Loop
	watcher  *config.Watcher
}

// New builds an application. The backend is not initialized until Run.
func New(opts Options) (*Application, error) {
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	logger = logger.WithField("session", id.String()[:8])

	b := opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return nil, NewOperationError("init", "terminal", err)
		}
		b = term
	}

	r := renderer.New(b, renderer.Options{TabWidth: opts.Config.Editor.TabWidth})
	session, err := NewEditorSession(SessionOptions{
		Config: opts.Config,
		Store:  filestore.NewStore(opts.FileSystem),
		Logger: logger,
		Width:  80,
		Height: 24,
	})
	if err != nil {
		return nil, NewOperationError("init", "session", err)
	}

	if opts.File != "" {
		if err := openOrAdopt(session, opts.File); err != nil {
			return nil, err
		}
	}

	a := &Application{
		id:       id,
		logger:   logger,
		backend:  b,
		renderer: r,
		session:  session,
		loop:     NewLoop(session, b, r, logger),
	}
	if err := a.WatchConfig(opts.ConfigPath); err != nil {
		logger.Warn("config watch disabled: %v", err)
	}
	return a, nil
}

// openOrAdopt opens path, or names the empty document after it when the
// file does not exist yet.
func openOrAdopt(s *EditorSession, path string) error {
	err := s.Open(path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	s.path = path
	if profile, ok := s.registry.Lookup(filepath.Ext(path)); ok {
		s.setProfile(profile)
		s.refresh()
	}
	s.StatusLine().SetMessage("New file: "+s.Name(), statusline.MessageInfo)
	return nil
}

// ID identifies this run of the editor in logs.
func (a *Application) ID() uuid.UUID { return a.id }

// Session returns the editing session.
func (a *Application) Session() *EditorSession { return a.session }

// Loop returns the event loop.
func (a *Application) Loop() *Loop { return a.loop }

// WatchConfig reloads settings from path whenever it changes, replacing
// any previous watch. Missing files are not watched.
func (a *Application) WatchConfig(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			return err
		}
		a.watcher = nil
	}

	log := a.logger.WithComponent("config")
	w, err := config.NewWatcher(path, func(cfg config.Config, err error) {
		if err != nil {
			log.Warn("reload %s: %v", path, err)
			return
		}
		a.loop.PostConfig(cfg)
	})
	if err != nil {
		return err
	}
	a.watcher = w
	log.Debug("watching %s", path)
	return nil
}

// Run initializes the backend and processes events until the user quits.
func (a *Application) Run() error {
	if err := a.backend.Init(); err != nil {
		return NewOperationError("init", "backend", err)
	}
	defer a.backend.Shutdown()

	a.logger.Info("started")
	defer a.logger.Info("stopped")
	return a.loop.Run()
}

// Quit stops Run from another goroutine, e.g. a signal handler.
func (a *Application) Quit() {
	a.loop.Quit()
}

// Close releases resources held outside the backend.
func (a *Application) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
