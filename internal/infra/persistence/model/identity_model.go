package model

import (
	"time"

	"github.com/google/uuid"
)

// ExternalIdentityModel mirrors the 'external_identities' table. The composite
// unique index enforces that one provider profile belongs to at most one row,
// regardless of verification state.
type ExternalIdentityModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Provider          string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_identity_provider_external_id"`
	ExternalID        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_identity_provider_external_id"`
	ExternalNumericID *int64
	ProfileURL        string `gorm:"type:text;not null"`
	Nonce             string `gorm:"type:varchar(64);not null"`
	Status            string `gorm:"type:varchar(20);not null;default:'pending'"`
	Verified          bool   `gorm:"not null;default:false"`
	VerifiedAt        *time.Time
	Attempts          int `gorm:"not null;default:0"`
	LastCheckedAt     *time.Time
	IsPrimary         bool   `gorm:"not null;default:false"`
	ErrorMessage      string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ExternalIdentityModel) TableName() string {
	return "external_identities"
}
