package state

import "context"

// DocumentRepository stores whole JSON documents by key. Put overwrites.
type DocumentRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, document []byte) error
	Delete(ctx context.Context, key string) error
}
