package filestore

import (
	"io/fs"
	"os"
	"path"
	"sync"
	"syscall"
	"time"
)

// FileSystem is the minimal file access a Store needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the operating system's file system.
type OSFS struct{}

// NewOSFS creates a new OS file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Ensure OSFS implements FileSystem.
var _ FileSystem = (*OSFS)(nil)

// ReadFile reads the entire file content.
func (f *OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file, creating it if necessary.
func (f *OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Stat returns file information.
func (f *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// MemFS implements FileSystem in memory. Parent directories are created
// implicitly on write.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
	dirs  map[string]bool
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string]*memFile),
		dirs:  map[string]bool{"/": true},
	}
}

// Ensure MemFS implements FileSystem.
var _ FileSystem = (*MemFS)(nil)

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = cleanPath(filePath)
	f, ok := m.files[filePath]
	if !ok {
		if m.dirs[filePath] {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: syscall.EISDIR}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	out := make([]byte, len(f.content))
	copy(out, f.content)
	return out, nil
}

// WriteFile writes data to a file, creating it and its parents if necessary.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = cleanPath(filePath)
	if m.dirs[filePath] {
		return &fs.PathError{Op: "write", Path: filePath, Err: syscall.EISDIR}
	}
	for dir := path.Dir(filePath); !m.dirs[dir]; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{content: content, mode: perm, modTime: time.Now()}
	return nil
}

// Mkdir creates a directory and its parents.
func (m *MemFS) Mkdir(dirPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for dir := cleanPath(dirPath); !m.dirs[dir]; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = cleanPath(filePath)
	if f, ok := m.files[filePath]; ok {
		return memFileInfo{name: path.Base(filePath), size: int64(len(f.content)), mode: f.mode, modTime: f.modTime}, nil
	}
	if m.dirs[filePath] {
		return memFileInfo{name: path.Base(filePath), mode: fs.ModeDir | 0o755}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

func cleanPath(p string) string {
	return path.Clean("/" + p)
}

// memFileInfo implements fs.FileInfo for MemFS entries.
type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (i memFileInfo) Name() string       { return i.name }
func (i memFileInfo) Size() int64        { return i.size }
func (i memFileInfo) Mode() fs.FileMode  { return i.mode }
func (i memFileInfo) ModTime() time.Time { return i.modTime }
func (i memFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i memFileInfo) Sys() any           { return nil }
