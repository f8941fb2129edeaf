package dto

import "time"

type MasteryResponse struct {
	ConceptKey         string    `json:"concept_key"`
	UnderstandingLevel int       `json:"understanding_level"`
	EncounterCount     int       `json:"encounter_count"`
	LastUpdated        time.Time `json:"last_updated"`
}

type MasteryListResponse struct {
	Concepts []MasteryResponse `json:"concepts"`
}
