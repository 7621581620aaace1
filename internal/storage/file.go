package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend writes objects below a root directory. Writes go to a temp
// file first and are renamed into place.
type FileBackend struct {
	root string
}

func NewFileBackend(root string) (*FileBackend, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileBackend{root: root}, nil
}

func (b *FileBackend) Put(ctx context.Context, key string, obj Object) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	target := filepath.Join(b.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, contextReader{ctx: ctx, r: obj.Body}); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move object into place: %w", err)
	}
	return cleaned, nil
}

func (b *FileBackend) Delete(_ context.Context, key string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(b.root, filepath.FromSlash(cleaned)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// contextReader stops a long copy once the request is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
