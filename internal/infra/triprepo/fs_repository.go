package triprepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tomoika/tripmag/internal/domain/trip"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// FSRepository serves trip documents from a directory tree laid out as
// <dir>/<slug>/trip.json.
type FSRepository struct {
	dir string
}

// NewFSRepository constructs the repository.
func NewFSRepository(dir string) *FSRepository {
	return &FSRepository{dir: dir}
}

// Fetch reads the document for a slug. Slugs that could escape the trip
// directory are treated as unknown trips rather than errors.
func (r *FSRepository) Fetch(_ context.Context, slug string) ([]byte, error) {
	if !slugRe.MatchString(slug) {
		return nil, trip.ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(r.dir, slug, "trip.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, trip.ErrNotFound
		}
		return nil, fmt.Errorf("read trip document: %w", err)
	}
	return data, nil
}

var _ trip.DocumentRepository = (*FSRepository)(nil)
