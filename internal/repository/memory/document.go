package memory

import (
	"context"
	"sync"

	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
)

// DocumentRepository keeps documents in process memory. Contents are lost on exit.
type DocumentRepository struct {
	mu        sync.RWMutex
	documents map[string][]byte
	failPuts  error
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{documents: make(map[string][]byte)}
}

// FailPuts makes every following Put return err; nil restores normal writes.
func (r *DocumentRepository) FailPuts(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failPuts = err
}

func (r *DocumentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[key]
	if !ok {
		return nil, state.ErrDocumentNotFound
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (r *DocumentRepository) Put(ctx context.Context, key string, document []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failPuts != nil {
		return r.failPuts
	}
	doc := make([]byte, len(document))
	copy(doc, document)
	r.documents[key] = doc
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.documents, key)
	return nil
}
