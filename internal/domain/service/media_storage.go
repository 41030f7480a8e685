package service

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrMediaNotFound is returned when a stored file does not exist.
var ErrMediaNotFound = errors.New("media not found")

// StoredMedia describes a file written by MediaStorage.
type StoredMedia struct {
	Name       string // Collision-resistant, path-safe object name.
	PublicPath string // Prefix + Name, the value kept on users and posts.
}

// MediaReader streams a stored file back.
type MediaReader interface {
	io.ReadCloser
	ContentType() string
	Size() int64
}

// MediaStorage persists user uploads under generated names.
type MediaStorage interface {
	// Save writes content under a fresh name derived from originalName.
	Save(ctx context.Context, originalName string, content io.Reader) (*StoredMedia, error)

	// Open returns a reader for a previously stored name.
	Open(ctx context.Context, name string) (MediaReader, error)
}
