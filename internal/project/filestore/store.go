package filestore

import (
	"errors"
	"io/fs"
)

// DefaultMaxFileSize is the largest file Read accepts by default.
const DefaultMaxFileSize = 10 * 1024 * 1024

// defaultPerm is the mode of newly created files.
const defaultPerm fs.FileMode = 0o644

// Store reads and writes whole files as text.
type Store struct {
	fs          FileSystem
	maxFileSize int64 // 0 = unlimited
}

// Option configures a Store.
type Option func(*Store)

// WithMaxFileSize sets the maximum file size Read accepts.
func WithMaxFileSize(size int64) Option {
	return func(s *Store) {
		s.maxFileSize = size
	}
}

// NewStore creates a Store over fsys. A nil fsys uses the OS file system.
func NewStore(fsys FileSystem, opts ...Option) *Store {
	if fsys == nil {
		fsys = NewOSFS()
	}
	s := &Store{fs: fsys, maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileSystem returns the underlying file system.
func (s *Store) FileSystem() FileSystem {
	return s.fs
}

// Read returns the full content of path.
func (s *Store) Read(path string) (string, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return "", &PathError{Op: "read", Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &PathError{Op: "read", Path: path, Err: ErrIsDirectory}
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return "", &PathError{Op: "read", Path: path, Err: ErrFileTooLarge}
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return "", &PathError{Op: "read", Path: path, Err: err}
	}
	return string(content), nil
}

// Write replaces the content of path with text, creating the file if it
// does not exist. The mode of an existing file is kept.
func (s *Store) Write(path, text string) error {
	perm := defaultPerm
	info, err := s.fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return &PathError{Op: "write", Path: path, Err: ErrIsDirectory}
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return &PathError{Op: "write", Path: path, Err: err}
	}

	if err := s.fs.WriteFile(path, []byte(text), perm); err != nil {
		return &PathError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func (s *Store) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}
