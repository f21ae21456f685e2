package triprepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomoika/tripmag/internal/domain/trip"
)

// PostgresRepository implements trip.DocumentRepository using pgx. Trip
// documents live in a trip_documents table as one jsonb row per slug.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Fetch returns the stored document for a slug.
func (r *PostgresRepository) Fetch(ctx context.Context, slug string) ([]byte, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `
		SELECT document
		FROM trip_documents
		WHERE slug = $1
	`, slug).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, trip.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

var _ trip.DocumentRepository = (*PostgresRepository)(nil)
