package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// ChangeHandler receives the reloaded settings. When err is non-nil the
// file could not be loaded and cfg holds the defaults.
type ChangeHandler func(cfg Config, err error)

// Watcher reloads a config file whenever it changes on disk.
//
// The file's directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still seen.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onChange ChangeHandler

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long to wait after the last event before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching path. onChange is called from the watcher's
// goroutine after each change.
func NewWatcher(path string, onChange ChangeHandler, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}

	w := &Watcher{
		path:     absPath,
		fsw:      fsw,
		debounce: DefaultDebounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fsw.Close()
		w.wg.Wait()
	})
	return w.closeErr
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.notify(Default(), fmt.Errorf("%w: %w", ErrWatchFailed, err))

		case <-fire:
			fire = nil
			w.notify(Load(w.path))
		}
	}
}

// relevant reports whether ev changes the watched file's content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) notify(cfg Config, err error) {
	select {
	case <-w.done:
		return
	default:
	}
	if w.onChange != nil {
		w.onChange(cfg, err)
	}
}
