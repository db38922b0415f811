package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/betlog"
)

// File stores a ledger in a JSONL file, see betlog.EncodeState.
type File struct {
	path string
}

// NewFile returns a store for the file at path. The file is created on the
// first save.
func NewFile(path string) *File { return &File{path: path} }

// Path returns the file path.
func (f *File) Path() string { return f.path }

func (f *File) Load() (betlog.State, error) {
	r, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return betlog.State{}, betlog.ErrNoState
	}
	if err != nil {
		return betlog.State{}, fmt.Errorf("could not open ledger file %q: %w", f.path, err)
	}
	defer r.Close()

	s, err := betlog.DecodeState(r)
	if err != nil {
		return betlog.State{}, fmt.Errorf("could not decode ledger file %q: %w", f.path, err)
	}
	return s, nil
}

// Save writes the state to a temporary file next to the ledger file, then
// renames it, so that a failed save never truncates the previous ledger.
func (f *File) Save(s betlog.State) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", f.path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := betlog.EncodeState(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode ledger file %q: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", f.path, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
