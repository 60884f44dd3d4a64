package model

import (
	"time"

	"github.com/google/uuid"
)

// CoachDomainChallengeModel mirrors the 'coach_domain_challenges' table.
type CoachDomainChallengeModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_challenges_user_domain,priority:1"`
	ProgramID     uuid.UUID `gorm:"type:uuid;not null"`
	Domain        string    `gorm:"type:varchar(255);not null;index:idx_challenges_user_domain,priority:2"`
	Method        string    `gorm:"type:varchar(10);not null"`
	Nonce         string    `gorm:"type:varchar(64);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts      int       `gorm:"not null;default:0"`
	ExpiresAt     time.Time `gorm:"not null"`
	VerifiedAt    *time.Time
	LastCheckedAt *time.Time
	ErrorMessage  string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CoachDomainChallengeModel) TableName() string {
	return "coach_domain_challenges"
}
