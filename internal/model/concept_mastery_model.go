package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConceptMastery struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_concept"`
	ConceptKey         string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_concept"`
	UnderstandingLevel int            `gorm:"not null;default:0"`
	EncounterCount     int            `gorm:"not null;default:0"`
	Observations       datatypes.JSON `gorm:"type:jsonb"`
	LastUpdated        time.Time      `gorm:"not null"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
}

func (ConceptMastery) TableName() string {
	return "concept_masteries"
}
