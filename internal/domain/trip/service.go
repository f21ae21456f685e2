package trip

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/tomoika/tripmag/pkg/errors"
)

// Service loads trip documents and turns them into the canonical model.
type Service interface {
	Load(ctx context.Context, slug string) (*TripData, error)
}

type service struct {
	cfg    Config
	repo   DocumentRepository
	store  Store
	logger *slog.Logger
}

// NewService wires up the trip domain.
func NewService(cfg Config, repo DocumentRepository, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		store:  store,
		logger: logger.With("component", "trip.service"),
	}
}

func (s *service) Load(ctx context.Context, slug string) (*TripData, error) {
	start := time.Now()

	doc, cached, err := s.store.GetDocument(ctx, slug)
	if err != nil {
		s.logger.Warn("trip cache lookup failed", "slug", slug, "error", err)
		cached = false
	}
	if !cached {
		doc, err = s.repo.Fetch(ctx, slug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, err
			}
			return nil, apperrors.Wrap("trip_error", "document fetch failed", err)
		}
		if err := s.store.SaveDocument(ctx, slug, doc, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("trip cache save failed", "slug", slug, "error", err)
		}
	}

	raw, err := DecodeDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := ValidateShape(raw); err != nil {
		return nil, err
	}
	data := Normalize(raw)

	s.logger.Info("trip loaded",
		"slug", slug,
		"cached", cached,
		"days", len(data.Days),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}
