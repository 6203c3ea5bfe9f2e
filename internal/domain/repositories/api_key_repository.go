package repositories

import (
	"context"

	"github.com/google/uuid"
	"keygate.backend/internal/domain/entities"
)

// ListOption reserves room for pagination without breaking callers; listing
// is unpaginated at current scale.
type ListOption func(*ListOptions)

type ListOptions struct {
	Limit  int
	Offset int
}

func WithLimit(limit, offset int) ListOption {
	return func(o *ListOptions) {
		o.Limit = limit
		o.Offset = offset
	}
}

// ApiKeyRepository is the durable key store. Insert must be atomic with
// respect to the id and key_hash uniqueness constraints; MarkRevoked must be
// a conditional update so concurrent revocations stay consistent.
type ApiKeyRepository interface {
	Insert(ctx context.Context, apiKey *entities.ApiKey) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ...ListOption) ([]*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	FindByHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	MarkRevoked(ctx context.Context, id, ownerID uuid.UUID) error
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}
