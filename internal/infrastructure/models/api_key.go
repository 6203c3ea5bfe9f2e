package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKey struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	KeyHash    string    `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of plaintext
	KeyMasked  string    `gorm:"type:varchar(20);not null"`             // "sk_liv...abcd"
	Revoked    bool      `gorm:"default:false;not null"`
	RevokedAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
