package credstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores one value per file under a directory, 0600-permissioned.
type File struct {
	dir string
}

// NewFile constructs a file-backed store rooted at dir. An empty dir
// resolves to the user config directory (XDG aware).
func NewFile(dir string) *File {
	if dir == "" {
		dir = DefaultDir()
	}
	return &File{dir: dir}
}

// DefaultDir returns the default credentials directory.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "firenotes")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "firenotes")
}

// Get reads the value for key, returning "" when the file does not exist.
func (f *File) Get(_ context.Context, key string) (string, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Set writes the value for key, creating the directory on first use.
func (f *File) Set(_ context.Context, key, value string) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), []byte(value), 0o600)
}

// Remove deletes the value for key; an absent key is not an error.
func (f *File) Remove(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *File) path(key string) string { return filepath.Join(f.dir, key) }
