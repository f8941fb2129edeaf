package mapper

import (
	"encoding/json"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/model"
)

type MasteryMapper struct{}

func NewMasteryMapper() *MasteryMapper {
	return &MasteryMapper{}
}

func (m *MasteryMapper) ToEntity(mm *model.ConceptMastery) *entity.ConceptMastery {
	if mm == nil {
		return nil
	}

	var observations []entity.ConceptObservation
	if len(mm.Observations) > 0 {
		// A corrupt observations blob should not make the row unreadable;
		// the history is advisory, the level/count columns are the source
		// of truth for smoothing.
		_ = json.Unmarshal(mm.Observations, &observations)
	}

	return &entity.ConceptMastery{
		Id:                 mm.Id,
		UserId:             mm.UserId,
		ConceptKey:         mm.ConceptKey,
		UnderstandingLevel: mm.UnderstandingLevel,
		EncounterCount:     mm.EncounterCount,
		Observations:       observations,
		LastUpdated:        mm.LastUpdated,
		CreatedAt:          mm.CreatedAt,
	}
}

func (m *MasteryMapper) ToModel(e *entity.ConceptMastery) (*model.ConceptMastery, error) {
	if e == nil {
		return nil, nil
	}

	observations, err := json.Marshal(e.Observations)
	if err != nil {
		return nil, err
	}

	return &model.ConceptMastery{
		Id:                 e.Id,
		UserId:             e.UserId,
		ConceptKey:         e.ConceptKey,
		UnderstandingLevel: e.UnderstandingLevel,
		EncounterCount:     e.EncounterCount,
		Observations:       observations,
		LastUpdated:        e.LastUpdated,
		CreatedAt:          e.CreatedAt,
	}, nil
}
