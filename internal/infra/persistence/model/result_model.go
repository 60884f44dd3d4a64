package model

import (
	"time"

	"github.com/google/uuid"
)

// ResultModel mirrors the 'results' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type ResultModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AthleteID      uuid.UUID `gorm:"type:uuid;not null;index:idx_results_athlete_event,priority:1"`
	EventCode      string    `gorm:"type:varchar(20);not null;index:idx_results_athlete_event,priority:2"`
	MarkText       string    `gorm:"type:varchar(50);not null"`
	MarkSeconds    *float64
	MarkSecondsAdj *float64
	MarkMetric     *float64
	Timing         string `gorm:"type:varchar(10)"`
	Wind           *float64
	Season         string    `gorm:"type:varchar(10);not null"`
	MeetName       string    `gorm:"type:varchar(255)"`
	MeetDate       time.Time `gorm:"type:date;not null"`
	Status         string    `gorm:"type:varchar(30);not null;default:'pending'"`
	ProofURL       string    `gorm:"type:text"`
	Source         string    `gorm:"type:varchar(20);not null;default:'direct'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ResultModel) TableName() string {
	return "results"
}
