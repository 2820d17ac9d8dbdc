package schema

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Source supplies the configuration document.
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads the configuration document from a file path.
type FileSource string

// Open opens the file.
func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// Dir returns the directory holding the file. Relative spreadsheet paths
// are usually resolved against it.
func (f FileSource) Dir() string {
	return filepath.Dir(string(f))
}

// BytesSource serves an in-memory configuration document.
type BytesSource []byte

// Open returns a reader over the bytes.
func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}
