package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultResolutionTTL bounds how long a cached resolution may outlive a
// revocation that raced past the invalidation. Kept short on purpose.
const DefaultResolutionTTL = 30 * time.Second

var (
	setCacheValue = Set
	getCacheValue = Get
	delCacheValue = Del
)

// VerificationCache memoizes digest-to-owner resolutions for the request
// verification hot path. Only active keys are ever cached; unknown and
// revoked credentials always hit the store.
type VerificationCache struct {
	ttl time.Duration
}

// NewVerificationCache creates a verification cache with the given TTL.
// A zero TTL falls back to DefaultResolutionTTL.
func NewVerificationCache(ttl time.Duration) *VerificationCache {
	if ttl <= 0 {
		ttl = DefaultResolutionTTL
	}
	return &VerificationCache{ttl: ttl}
}

// GetOwner returns the cached owner for a key digest, if present.
func (c *VerificationCache) GetOwner(ctx context.Context, keyHash string) (uuid.UUID, bool) {
	val, err := getCacheValue(ctx, "apikey:"+keyHash)
	if err != nil {
		return uuid.Nil, false
	}
	ownerID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return ownerID, true
}

// SetOwner caches a successful resolution.
func (c *VerificationCache) SetOwner(ctx context.Context, keyHash string, ownerID uuid.UUID) error {
	return setCacheValue(ctx, "apikey:"+keyHash, ownerID.String(), c.ttl)
}

// Invalidate drops a cached resolution. Called on revocation.
func (c *VerificationCache) Invalidate(ctx context.Context, keyHash string) error {
	return delCacheValue(ctx, "apikey:"+keyHash)
}
