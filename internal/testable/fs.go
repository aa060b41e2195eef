// Package testable provides interfaces for abstracting OS-level and network
// operations, enabling mock injection in tests without modifying production
// behavior.
package testable

import (
	"io"
	"os"
)

// FileSystem abstracts the file reads the loader performs.
// The production implementation (OsFileSystem) delegates to the standard library.
type FileSystem interface {
	// Stat returns a FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)

	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// Open opens the named file for reading.
	Open(name string) (io.ReadCloser, error)
}

// OsFileSystem is the production implementation of FileSystem.
type OsFileSystem struct{}

// Stat wraps os.Stat.
func (OsFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile wraps os.ReadFile.
func (OsFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // caller controls path
}

// Open wraps os.Open.
func (OsFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name) //nolint:gosec // caller controls path
}

// DefaultFS is the FileSystem used when no custom one is injected.
var DefaultFS FileSystem = OsFileSystem{}
