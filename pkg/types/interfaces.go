package types

import (
	"io"
	"io/fs"
	"time"
)

// FS is the filesystem interface required for installer operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)
	Chtimes(name string, atime, mtime time.Time) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error

	// Lstat and Readlink are used for symlink-aware path containment.
	// Implementations without symlinks can fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)
}
