package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	domainrepos "keygate.backend/internal/domain/repositories"
	"keygate.backend/internal/infrastructure/models"
)

// ApiKeyRepository implements the key store on gorm. Uniqueness of id and
// key_hash is enforced by the database, not by read-then-write.
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new api key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Insert persists a new key record. A duplicate id or key_hash surfaces as
// ErrAlreadyExists with nothing persisted.
func (r *ApiKeyRepository) Insert(ctx context.Context, apiKey *entities.ApiKey) error {
	m := &models.ApiKey{
		ID:        apiKey.ID,
		OwnerID:   apiKey.OwnerID,
		Name:      apiKey.Name,
		KeyHash:   apiKey.KeyHash,
		KeyMasked: apiKey.KeyMasked,
		Revoked:   apiKey.Revoked,
		CreatedAt: apiKey.CreatedAt,
		UpdatedAt: apiKey.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListByOwner returns all keys of one owner, revoked included, newest first.
func (r *ApiKeyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ...domainrepos.ListOption) ([]*entities.ApiKey, error) {
	var listOpts domainrepos.ListOptions
	for _, opt := range opts {
		opt(&listOpts)
	}

	q := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")
	if listOpts.Limit > 0 {
		q = q.Limit(listOpts.Limit).Offset(listOpts.Offset)
	}

	var ms []models.ApiKey
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.ApiKey, 0, len(ms))
	for i := range ms {
		keys = append(keys, r.toEntity(&ms[i]))
	}
	return keys, nil
}

// FindByID gets a key by its identifier. Never used for authentication
// lookup; that path goes through FindByHash only.
func (r *ApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByHash resolves a presented credential's digest to its record. The
// uniqueIndex on key_hash keeps this O(log n) per request.
func (r *ApiKeyRepository) FindByHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// MarkRevoked flips revoked for the owner's key via a single conditional
// UPDATE. Re-revoking an already revoked key succeeds as a no-op; a key that
// does not exist or belongs to someone else is ErrNotFound either way.
func (r *ApiKeyRepository) MarkRevoked(ctx context.Context, id, ownerID uuid.UUID) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ? AND owner_id = ? AND revoked = ?", id, ownerID, false).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": now,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: either already revoked (idempotent success) or no
	// such key for this owner.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// TouchLastUsed records verifier activity. Best effort; callers ignore the
// error on the hot path.
func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now()).Error
}

func (r *ApiKeyRepository) toEntity(m *models.ApiKey) *entities.ApiKey {
	return &entities.ApiKey{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		Name:       m.Name,
		KeyHash:    m.KeyHash,
		KeyMasked:  m.KeyMasked,
		Revoked:    m.Revoked,
		RevokedAt:  null.TimeFromPtr(m.RevokedAt),
		LastUsedAt: null.TimeFromPtr(m.LastUsedAt),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
