package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/storage"
)

// documentRepositoryImpl keeps each document in its own <key>.json file.
type documentRepositoryImpl struct {
	files storage.FileStorage
}

func NewDocumentRepository(files storage.FileStorage) state.DocumentRepository {
	return &documentRepositoryImpl{files: files}
}

func path(key string) string {
	return key + ".json"
}

// Get implements state.DocumentRepository.
func (r *documentRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := r.files.Read(ctx, path(key))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, state.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document %s: %w", key, err)
	}
	defer rc.Close()

	document, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", key, err)
	}
	return document, nil
}

// Put implements state.DocumentRepository.
func (r *documentRepositoryImpl) Put(ctx context.Context, key string, document []byte) error {
	if err := r.files.Write(ctx, path(key), bytes.NewReader(document)); err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	return nil
}

// Delete implements state.DocumentRepository.
func (r *documentRepositoryImpl) Delete(ctx context.Context, key string) error {
	if err := r.files.Delete(ctx, path(key)); err != nil {
		return fmt.Errorf("delete document %s: %w", key, err)
	}
	return nil
}
