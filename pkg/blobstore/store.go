// Package blobstore keeps whole JSON documents under string keys. Every Put
// replaces the document; there are no partial updates.
package blobstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}
