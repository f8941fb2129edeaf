// Package mastery maintains the per-user, per-concept running belief
// estimate. Each observation nudges the stored level with recency-weighted
// smoothing; confidence in the prior grows with encounter count but is
// capped so the newest evidence always keeps at least 20% weight.
package mastery

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	// priorWeightCap is the maximum weight the stored level can carry.
	priorWeightCap = 0.8

	// encounterDivisor scales encounter count into the prior weight.
	encounterDivisor = 10.0
)

// ConceptUpdateError aggregates per-observation failures. The batch never
// aborts on a row error; callers log the aggregate.
type ConceptUpdateError struct {
	Failures map[string]error // conceptKey -> error
}

func (e *ConceptUpdateError) Error() string {
	keys := make([]string, 0, len(e.Failures))
	for k := range e.Failures {
		keys = append(keys, k)
	}
	return fmt.Sprintf("concept update failed for %d observation(s): %s", len(e.Failures), strings.Join(keys, ", "))
}

// Updater applies observation batches against the mastery store.
type Updater struct {
	factory unitofwork.RepositoryFactory
	logger  logger.ILogger
}

func NewUpdater(factory unitofwork.RepositoryFactory, log logger.ILogger) *Updater {
	return &Updater{
		factory: factory,
		logger:  log,
	}
}

// Smooth computes the new understanding level given the stored prior and a
// new confidence reading. Exported because the convergence behavior is the
// contract, not an implementation detail.
func Smooth(priorLevel, confidence, encounterCount int) int {
	weight := math.Min(float64(encounterCount)/encounterDivisor, priorWeightCap)
	return int(math.Round(float64(priorLevel)*weight + float64(confidence)*(1-weight)))
}

// Apply upserts one mastery row per observation. Each row runs in its own
// transaction under a row lock, so concurrent batches for the same
// (user, concept) serialize instead of losing updates. Returns the number
// of rows written; the error, when non-nil, is always a
// *ConceptUpdateError aggregate.
func (u *Updater) Apply(ctx context.Context, userId uuid.UUID, observations []entity.ConceptObservation) (int, error) {
	updated := 0
	failures := make(map[string]error)

	for _, obs := range observations {
		if err := u.applyOne(ctx, userId, obs); err != nil {
			failures[obs.ConceptKey] = err
			u.logger.Error("MasteryUpdater", "Observation failed, continuing batch", map[string]interface{}{
				"user_id":     userId,
				"concept_key": obs.ConceptKey,
				"error":       err.Error(),
			})
			continue
		}
		updated++
	}

	if len(failures) > 0 {
		return updated, &ConceptUpdateError{Failures: failures}
	}
	return updated, nil
}

func (u *Updater) applyOne(ctx context.Context, userId uuid.UUID, obs entity.ConceptObservation) error {
	uow := u.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	repo := uow.ConceptMasteryRepository()

	existing, err := repo.FindForUpdate(ctx, userId, obs.ConceptKey)
	if err != nil {
		_ = uow.Rollback()
		return err
	}

	now := time.Now()

	if existing == nil {
		mastery := &entity.ConceptMastery{
			Id:                 uuid.New(),
			UserId:             userId,
			ConceptKey:         obs.ConceptKey,
			UnderstandingLevel: obs.Confidence,
			EncounterCount:     1,
			Observations:       []entity.ConceptObservation{obs},
			LastUpdated:        now,
			CreatedAt:          now,
		}
		if err := repo.Create(ctx, mastery); err != nil {
			_ = uow.Rollback()
			return err
		}
		return uow.Commit()
	}

	existing.UnderstandingLevel = Smooth(existing.UnderstandingLevel, obs.Confidence, existing.EncounterCount)
	existing.EncounterCount++
	existing.Observations = append(existing.Observations, obs)
	if len(existing.Observations) > entity.ObservationHistoryCap {
		existing.Observations = existing.Observations[len(existing.Observations)-entity.ObservationHistoryCap:]
	}
	existing.LastUpdated = now

	if err := repo.Update(ctx, existing); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}
