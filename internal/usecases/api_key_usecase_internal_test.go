package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/pkg/crypto"
)

func TestCreateKey_GeneratorUnavailable(t *testing.T) {
	orig := generateKey
	generateKey = func() (*crypto.GeneratedKey, error) {
		return nil, crypto.ErrGenerationUnavailable
	}
	t.Cleanup(func() { generateKey = orig })

	// No repository call should ever happen; a nil repo would panic if one did.
	uc := NewApiKeyUsecase(nil, nil, 3)
	_, err := uc.CreateKey(context.Background(), uuid.New(), &entities.CreateApiKeyInput{Name: "production"})
	require.ErrorIs(t, err, domainerrors.ErrGenerationUnavailable)
}
