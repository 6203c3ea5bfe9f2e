package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"keygate.backend/internal/domain/entities"
	"keygate.backend/internal/domain/repositories"
)

// Mock ApiKeyRepository
type MockApiKeyRepository struct {
	mock.Mock
}

func (m *MockApiKeyRepository) Insert(ctx context.Context, apiKey *entities.ApiKey) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}

func (m *MockApiKeyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ...repositories.ListOption) ([]*entities.ApiKey, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) FindByHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	args := m.Called(ctx, keyHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) MarkRevoked(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock VerificationCache
type MockVerificationCache struct {
	mock.Mock
}

func (m *MockVerificationCache) GetOwner(ctx context.Context, keyHash string) (uuid.UUID, bool) {
	args := m.Called(ctx, keyHash)
	return args.Get(0).(uuid.UUID), args.Bool(1)
}

func (m *MockVerificationCache) SetOwner(ctx context.Context, keyHash string, ownerID uuid.UUID) error {
	args := m.Called(ctx, keyHash, ownerID)
	return args.Error(0)
}

func (m *MockVerificationCache) Invalidate(ctx context.Context, keyHash string) error {
	args := m.Called(ctx, keyHash)
	return args.Error(0)
}
