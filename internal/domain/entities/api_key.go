package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApiKey is the durable record of an issued key. The plaintext secret is
// never part of this struct; KeyHash is its only stored representation.
type ApiKey struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Name       string    `json:"name"`
	KeyHash    string    `json:"-"`
	KeyMasked  string    `json:"masked"`
	Revoked    bool      `json:"revoked"`
	RevokedAt  null.Time `json:"revokedAt,omitempty"`
	LastUsedAt null.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateApiKeyInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateApiKeyResponse carries the one-time plaintext. It is returned
// synchronously from creation and never stored or re-sent.
type CreateApiKeyResponse struct {
	ID  uuid.UUID `json:"id"`
	Key string    `json:"key"`
}

// ApiKeyView is the listing shape. Hash and plaintext are never exposed.
type ApiKeyView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Masked    string    `json:"masked"`
	CreatedAt time.Time `json:"createdAt"`
	Revoked   bool      `json:"revoked"`
}
