package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/domain/repositories"
	"keygate.backend/pkg/crypto"
	"keygate.backend/pkg/logger"
)

// VerificationCache memoizes digest-to-owner resolutions. Implementations
// only ever hold active keys; a miss is always answered by the store.
type VerificationCache interface {
	GetOwner(ctx context.Context, keyHash string) (uuid.UUID, bool)
	SetOwner(ctx context.Context, keyHash string, ownerID uuid.UUID) error
	Invalidate(ctx context.Context, keyHash string) error
}

const defaultGenerationRetries = 3

var generateKey = crypto.GenerateKey

// ApiKeyUsecase orchestrates the key lifecycle against the key store
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
	cache      VerificationCache
	maxRetries int
}

// NewApiKeyUsecase creates a new api key usecase. cache may be nil, in which
// case every verification goes to the store.
func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository, cache VerificationCache, maxRetries int) *ApiKeyUsecase {
	if maxRetries <= 0 {
		maxRetries = defaultGenerationRetries
	}
	return &ApiKeyUsecase{
		apiKeyRepo: apiKeyRepo,
		cache:      cache,
		maxRetries: maxRetries,
	}
}

// CreateKey generates a fresh key for the owner and returns the one-time
// plaintext. A digest collision re-generates up to maxRetries attempts;
// the collision never surfaces to the caller unless retries exhaust.
func (u *ApiKeyUsecase) CreateKey(ctx context.Context, ownerID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("key name is required")
	}

	for attempt := 0; attempt < u.maxRetries; attempt++ {
		generated, err := generateKey()
		if err != nil {
			return nil, domainerrors.GenerationUnavailable("key generation failed")
		}

		now := time.Now()
		key := &entities.ApiKey{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Name:      name,
			KeyHash:   generated.Hash,
			KeyMasked: generated.Masked,
			Revoked:   false,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = u.apiKeyRepo.Insert(ctx, key)
		if err == nil {
			return &entities.CreateApiKeyResponse{
				ID:  key.ID,
				Key: generated.Plaintext,
			}, nil
		}
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			logger.Warn(ctx, "api key digest collision, regenerating",
				zap.Int("attempt", attempt+1))
			continue
		}
		return nil, domainerrors.InternalError(err)
	}

	return nil, domainerrors.GenerationUnavailable("key generation failed")
}

// ListKeys returns the display views of all of the owner's keys, newest
// first. Digests and plaintext never leave this layer.
func (u *ApiKeyUsecase) ListKeys(ctx context.Context, ownerID uuid.UUID) ([]*entities.ApiKeyView, error) {
	keys, err := u.apiKeyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	views := make([]*entities.ApiKeyView, 0, len(keys))
	for _, k := range keys {
		views = append(views, &entities.ApiKeyView{
			ID:        k.ID,
			Name:      k.Name,
			Masked:    k.KeyMasked,
			CreatedAt: k.CreatedAt,
			Revoked:   k.Revoked,
		})
	}
	return views, nil
}

// RevokeKey revokes one of the owner's keys. A key that does not exist and
// a key owned by someone else are the same NotFound to the caller.
func (u *ApiKeyUsecase) RevokeKey(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := u.apiKeyRepo.MarkRevoked(ctx, id, ownerID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("api key not found")
		}
		return domainerrors.InternalError(err)
	}

	if u.cache != nil {
		if key, err := u.apiKeyRepo.FindByID(ctx, id); err == nil {
			if err := u.cache.Invalidate(ctx, key.KeyHash); err != nil {
				logger.Warn(ctx, "failed to invalidate verification cache",
					zap.String("key_id", id.String()), zap.Error(err))
			}
		}
	}
	return nil
}

// VerifyKey resolves a presented plaintext credential to its owner. Unknown
// credentials return ErrUnauthorized, revoked ones ErrKeyRevoked; callers
// collapse both into one generic denial externally. Lookup is by digest
// only, so cost does not depend on the number of stored keys and no
// per-key comparison can leak timing.
func (u *ApiKeyUsecase) VerifyKey(ctx context.Context, plaintext string) (uuid.UUID, error) {
	if plaintext == "" {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	keyHash := crypto.HashKey(plaintext)

	if u.cache != nil {
		if ownerID, ok := u.cache.GetOwner(ctx, keyHash); ok {
			return ownerID, nil
		}
	}

	key, err := u.apiKeyRepo.FindByHash(ctx, keyHash)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return uuid.Nil, domainerrors.ErrUnauthorized
		}
		return uuid.Nil, err
	}
	if key.Revoked {
		return uuid.Nil, domainerrors.ErrKeyRevoked
	}

	if u.cache != nil {
		if err := u.cache.SetOwner(ctx, keyHash, key.OwnerID); err != nil {
			logger.Debug(ctx, "failed to cache verification", zap.Error(err))
		}
	}

	// Best effort; the request must not fail on a bookkeeping update.
	_ = u.apiKeyRepo.TouchLastUsed(ctx, key.ID)

	return key.OwnerID, nil
}
