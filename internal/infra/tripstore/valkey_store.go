package tripstore

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/tomoika/tripmag/internal/domain/trip"
)

// ValkeyStore caches raw trip documents in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "trip"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetDocument(ctx context.Context, slug string) ([]byte, bool, error) {
	cmd := s.client.B().Get().Key(s.documentKey(slug)).Build()
	payload, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *ValkeyStore) SaveDocument(ctx context.Context, slug string, doc []byte, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.documentKey(slug)).Value(string(doc))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) documentKey(slug string) string {
	return fmt.Sprintf("%s:doc:%s", s.prefix, slug)
}

var _ trip.Store = (*ValkeyStore)(nil)
