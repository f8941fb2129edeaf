package service

import (
	"context"

	"companion-chat-be/internal/dto"
	"companion-chat-be/internal/repository/specification"
	"companion-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMasteryService interface {
	GetUserMastery(ctx context.Context, userId uuid.UUID) (*dto.MasteryListResponse, error)
}

type masteryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMasteryService(uowFactory unitofwork.RepositoryFactory) IMasteryService {
	return &masteryService{
		uowFactory: uowFactory,
	}
}

func (s *masteryService) GetUserMastery(ctx context.Context, userId uuid.UUID) (*dto.MasteryListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.ConceptMasteryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "concept_key", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := &dto.MasteryListResponse{
		Concepts: make([]dto.MasteryResponse, 0, len(rows)),
	}
	for _, r := range rows {
		response.Concepts = append(response.Concepts, dto.MasteryResponse{
			ConceptKey:         r.ConceptKey,
			UnderstandingLevel: r.UnderstandingLevel,
			EncounterCount:     r.EncounterCount,
			LastUpdated:        r.LastUpdated,
		})
	}

	return response, nil
}
