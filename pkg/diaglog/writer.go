package diaglog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const filePerm = 0o644

// Writer appends entries to a file. It is safe for concurrent use.
// The file is opened per append so rotation or removal by an operator is picked up.
type Writer struct {
	path string
	mu   sync.Mutex
}

// New creates a Writer for the given path. The file is created on first append.
func New(path string) (*Writer, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &Writer{path: path}, nil
}

// Path returns the file path entries are appended to.
func (w *Writer) Path() string {
	return w.path
}

// Append writes e to the end of the file in a single write.
func (w *Writer) Append(e Entry) error {
	data := []byte(e.Format())

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil || cerr != nil {
		return errors.Join(ErrWriteFailed, werr, cerr)
	}
	return nil
}

// Healthcheck returns a readiness check verifying the log directory is writable.
func Healthcheck(w *Writer) func(context.Context) error {
	return func(context.Context) error {
		dir := filepath.Dir(w.path)
		f, err := os.CreateTemp(dir, ".diaglog-probe-*")
		if err != nil {
			return fmt.Errorf("diaglog: directory %s not writable: %w", dir, err)
		}
		name := f.Name()
		_ = f.Close()
		return os.Remove(name)
	}
}
