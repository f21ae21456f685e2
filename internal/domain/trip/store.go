package trip

import (
	"context"
	"time"
)

// Store defines the cache contract for raw trip documents.
type Store interface {
	GetDocument(ctx context.Context, slug string) ([]byte, bool, error)
	SaveDocument(ctx context.Context, slug string, doc []byte, ttl time.Duration) error
}
