package triprepo

import (
	"context"
	"sync"

	"github.com/tomoika/tripmag/internal/domain/trip"
)

// MemoryRepository holds trip documents in memory. Useful for tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryRepository constructs a repository seeded with the given
// documents, keyed by slug.
func NewMemoryRepository(docs map[string][]byte) *MemoryRepository {
	if docs == nil {
		docs = map[string][]byte{}
	}
	return &MemoryRepository{docs: docs}
}

// Put adds or replaces a document.
func (r *MemoryRepository) Put(slug string, doc []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[slug] = doc
}

// Fetch implements trip.DocumentRepository.
func (r *MemoryRepository) Fetch(_ context.Context, slug string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[slug]
	if !ok {
		return nil, trip.ErrNotFound
	}
	return doc, nil
}

var _ trip.DocumentRepository = (*MemoryRepository)(nil)
