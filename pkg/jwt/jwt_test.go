package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	ownerID := uuid.New()

	token, err := svc.GenerateToken(ownerID, "owner@keygate.dev")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, ownerID, claims.OwnerID)
	require.Equal(t, "owner@keygate.dev", claims.Email)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Minute).GenerateToken(uuid.New(), "o@keygate.dev")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Minute).ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)
	token, err := svc.GenerateToken(uuid.New(), "o@keygate.dev")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Garbage(t *testing.T) {
	_, err := NewJWTService("secret", time.Minute).ValidateToken("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
