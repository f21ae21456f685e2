package trip

import "context"

// DocumentRepository encapsulates raw trip document storage. Fetch
// returns ErrNotFound when no document exists for the slug.
type DocumentRepository interface {
	Fetch(ctx context.Context, slug string) ([]byte, error)
}
