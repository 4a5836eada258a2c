// Package loader reads the configuration documents that drive menustorm:
// the application config, menu action lists and group files (TOML), and
// menu layout files (YAML).
//
// All reads and writes go through FileSystem so the loaders run from memory
// in tests.
package loader

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
	// WriteFile replaces the file at path with data.
	WriteFile(path string, data []byte) error
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WriteFile writes data to a temporary sibling and renames it over path.
func (OSFS) WriteFile(name string, data []byte) error {
	dir := filepath.Dir(name)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, name)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// MemFS is an in-memory FileSystem. It is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// AddFile stores content at path.
func (m *MemFS) AddFile(path string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(path)] = []byte(content)
}

// Paths returns the stored paths in sorted order.
func (m *MemFS) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Open implements fs.FS.
func (m *MemFS) Open(name string) (fs.File, error) {
	data, err := m.ReadFile(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &memFile{
		Reader: bytes.NewReader(data),
		info:   memFileInfo{name: path.Base(name), size: int64(len(data))},
	}, nil
}

// ReadFile returns a copy of the file at path.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Stat returns file info for path.
func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return memFileInfo{name: filepath.Base(path), size: int64(len(data))}, nil
}

// WriteFile stores a copy of data at path.
func (m *MemFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(path)] = append([]byte(nil), data...)
	return nil
}

func clean(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

type memFile struct {
	*bytes.Reader
	info memFileInfo
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memFile) Close() error               { return nil }

var _ io.ReadSeeker = (*memFile)(nil)

type memFileInfo struct {
	name string
	size int64
}

func (f memFileInfo) Name() string       { return f.name }
func (f memFileInfo) Size() int64        { return f.size }
func (f memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f memFileInfo) ModTime() time.Time { return time.Time{} }
func (f memFileInfo) IsDir() bool        { return false }
func (f memFileInfo) Sys() any           { return nil }

// Resolve joins rel onto the directory of base unless rel is absolute.
// Group files reference menu layouts relative to themselves.
func Resolve(base, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(filepath.Dir(base), rel)
}
