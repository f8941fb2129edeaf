package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConceptObservation is one piece of evidence that a user demonstrated (or
// failed to demonstrate) understanding of a concept. Produced by the
// concept-extraction collaborator.
type ConceptObservation struct {
	ConceptKey string    `json:"concept_key"`
	Confidence int       `json:"confidence"` // 0-10
	Evidence   string    `json:"evidence"`
	MessageId  uuid.UUID `json:"message_id"`
	ObservedAt time.Time `json:"observed_at"`
}

// ConceptMastery is the per-(user, concept) running belief estimate.
// Created on first observation, mutated monotonically, never deleted here.
type ConceptMastery struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	ConceptKey         string
	UnderstandingLevel int // 0-10, smoothed
	EncounterCount     int
	Observations       []ConceptObservation // most-recent-last, capped at 10
	LastUpdated        time.Time
	CreatedAt          time.Time
}

// ObservationHistoryCap bounds the retained observation list; oldest
// entries are dropped first.
const ObservationHistoryCap = 10
