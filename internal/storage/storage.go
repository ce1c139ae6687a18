// Package storage keeps uploaded photo bytes outside the database. Entities
// only hold the key and public URL returned here.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrBlobNotFound = errors.New("blob not found")

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// BlobStore is implemented by every attachment backend.
type BlobStore interface {
	Put(ctx context.Context, key string, upload Upload) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
