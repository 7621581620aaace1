// Package storage stores uploaded nominee documents on local disk or S3.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

var ErrInvalidKey = dErrors.New(dErrors.CodeBadRequest, "invalid storage key")

// Object describes the bytes to store under a key.
type Object struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// Backend is implemented by FileBackend, S3Backend and InMemory.
// Delete of a missing key is not an error.
type Backend interface {
	Put(ctx context.Context, key string, obj Object) (string, error)
	Delete(ctx context.Context, key string) error
}

// CleanKey normalizes a slash-separated key and rejects keys that escape the
// storage root.
func CleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || strings.HasPrefix(cleaned, "..") || cleaned != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
