package triprepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomoika/tripmag/internal/domain/trip"
)

func TestFSRepository_Fetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "japan"), 0o755))
	doc := []byte(`{"trip": {"title": "Japan"}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "japan", "trip.json"), doc, 0o644))

	repo := NewFSRepository(dir)

	got, err := repo.Fetch(context.Background(), "japan")
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestFSRepository_MissingSlug(t *testing.T) {
	repo := NewFSRepository(t.TempDir())

	_, err := repo.Fetch(context.Background(), "atlantis")
	require.ErrorIs(t, err, trip.ErrNotFound)
}

func TestFSRepository_RejectsUnsafeSlugs(t *testing.T) {
	repo := NewFSRepository(t.TempDir())

	for _, slug := range []string{"../etc", "a/b", "UPPER", "trip json", ""} {
		_, err := repo.Fetch(context.Background(), slug)
		require.ErrorIs(t, err, trip.ErrNotFound, "slug %q", slug)
	}
}
