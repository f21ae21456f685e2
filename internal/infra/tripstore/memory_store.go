package tripstore

import (
	"context"
	"sync"
	"time"

	"github.com/tomoika/tripmag/internal/domain/trip"
	"github.com/tomoika/tripmag/pkg/util"
)

type cachedDocument struct {
	doc       []byte
	expiresAt time.Time
}

// MemoryStore is an in-memory document cache for tests and local dev.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]cachedDocument
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]cachedDocument)}
}

// GetDocument implements trip.Store.
func (s *MemoryStore) GetDocument(_ context.Context, slug string) ([]byte, bool, error) {
	s.mu.RLock()
	record, ok := s.docs[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.docs, slug)
		s.mu.Unlock()
		return nil, false, nil
	}
	return record.doc, true, nil
}

// SaveDocument caches the raw document with optional TTL.
func (s *MemoryStore) SaveDocument(_ context.Context, slug string, doc []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = util.NowUTC().Add(ttl)
	}
	s.docs[slug] = cachedDocument{doc: doc, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(util.NowUTC())
}

var _ trip.Store = (*MemoryStore)(nil)
