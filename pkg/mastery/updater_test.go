package mastery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/repository/contract"
	"companion-chat-be/internal/repository/specification"
	"companion-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeMasteryRepo keeps rows in a map keyed by concept; failKey simulates
// a row-level storage error.
type fakeMasteryRepo struct {
	rows    map[string]*entity.ConceptMastery
	failKey string
}

func newFakeMasteryRepo() *fakeMasteryRepo {
	return &fakeMasteryRepo{rows: make(map[string]*entity.ConceptMastery)}
}

func (f *fakeMasteryRepo) Create(_ context.Context, mastery *entity.ConceptMastery) error {
	f.rows[mastery.ConceptKey] = mastery
	return nil
}

func (f *fakeMasteryRepo) FindForUpdate(_ context.Context, _ uuid.UUID, conceptKey string) (*entity.ConceptMastery, error) {
	if conceptKey == f.failKey {
		return nil, fmt.Errorf("lock failed for %s", conceptKey)
	}
	return f.rows[conceptKey], nil
}

func (f *fakeMasteryRepo) Update(_ context.Context, mastery *entity.ConceptMastery) error {
	f.rows[mastery.ConceptKey] = mastery
	return nil
}

func (f *fakeMasteryRepo) FindOne(context.Context, ...specification.Specification) (*entity.ConceptMastery, error) {
	return nil, nil
}

func (f *fakeMasteryRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ConceptMastery, error) {
	return nil, nil
}

func (f *fakeMasteryRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeUnitOfWork struct {
	repo *fakeMasteryRepo
}

func (f *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error               { return nil }
func (f *fakeUnitOfWork) Rollback() error             { return nil }

func (f *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository { return nil }
func (f *fakeUnitOfWork) MessageRepository() contract.MessageRepository           { return nil }
func (f *fakeUnitOfWork) KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository {
	return nil
}
func (f *fakeUnitOfWork) KnowledgeChunkRepository() contract.KnowledgeChunkRepository { return nil }
func (f *fakeUnitOfWork) ConceptMasteryRepository() contract.ConceptMasteryRepository {
	return f.repo
}

type fakeFactory struct {
	repo *fakeMasteryRepo
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo}
}

func TestSmooth(t *testing.T) {
	tests := []struct {
		name           string
		priorLevel     int
		confidence     int
		encounterCount int
		want           int
	}{
		{
			name:           "first encounter gives new evidence 90% weight",
			priorLevel:     0,
			confidence:     10,
			encounterCount: 1,
			want:           9,
		},
		{
			name:           "mid history blends both sides",
			priorLevel:     4,
			confidence:     8,
			encounterCount: 5,
			want:           6,
		},
		{
			name:           "weight caps at 0.8",
			priorLevel:     10,
			confidence:     0,
			encounterCount: 50,
			want:           8,
		},
		{
			name:           "agreement is stable",
			priorLevel:     7,
			confidence:     7,
			encounterCount: 3,
			want:           7,
		},
		{
			name:           "rounds to nearest",
			priorLevel:     5,
			confidence:     6,
			encounterCount: 5,
			want:           6, // 5*0.5 + 6*0.5 = 5.5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Smooth(tt.priorLevel, tt.confidence, tt.encounterCount)
			if got != tt.want {
				t.Errorf("Smooth(%d, %d, %d) = %d, want %d",
					tt.priorLevel, tt.confidence, tt.encounterCount, got, tt.want)
			}
		})
	}
}

func TestSmoothConvergence(t *testing.T) {
	// Repeated consistent evidence must pull the level toward the evidence,
	// even once the prior weight is capped.
	level := 2
	count := 1
	for i := 0; i < 20; i++ {
		level = Smooth(level, 10, count)
		count++
	}
	if level < 9 {
		t.Errorf("level after 20 consistent observations = %d, want >= 9", level)
	}

	// And a single contradicting reading still moves it, because the new
	// evidence always keeps at least 20% weight.
	moved := Smooth(level, 0, count)
	if moved >= level {
		t.Errorf("contradicting evidence did not lower the level: %d -> %d", level, moved)
	}
}

func TestSmoothBounds(t *testing.T) {
	for prior := 0; prior <= 10; prior++ {
		for conf := 0; conf <= 10; conf++ {
			for count := 0; count <= 30; count += 3 {
				got := Smooth(prior, conf, count)
				if got < 0 || got > 10 {
					t.Fatalf("Smooth(%d, %d, %d) = %d, out of range", prior, conf, count, got)
				}
			}
		}
	}
}

func TestConceptUpdateErrorMessage(t *testing.T) {
	err := &ConceptUpdateError{Failures: map[string]error{
		"recognizes_thought_impermanence": errors.New("boom"),
	}}

	msg := err.Error()
	if !strings.Contains(msg, "recognizes_thought_impermanence") {
		t.Errorf("error message %q missing concept key", msg)
	}
}

func TestApplyCreatesFreshRow(t *testing.T) {
	repo := newFakeMasteryRepo()
	updater := NewUpdater(&fakeFactory{repo: repo}, nopLogger{})
	userId := uuid.New()

	updated, err := updater.Apply(context.Background(), userId, []entity.ConceptObservation{
		{ConceptKey: "names_racing_thoughts", Confidence: 7, ObservedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if updated != 1 {
		t.Fatalf("Apply() updated = %d, want 1", updated)
	}

	row := repo.rows["names_racing_thoughts"]
	if row == nil {
		t.Fatal("no row created for the fresh concept")
	}
	if row.UnderstandingLevel != 7 {
		t.Errorf("UnderstandingLevel = %d, want the raw confidence 7", row.UnderstandingLevel)
	}
	if row.EncounterCount != 1 {
		t.Errorf("EncounterCount = %d, want 1", row.EncounterCount)
	}
	if len(row.Observations) != 1 {
		t.Errorf("Observations = %d, want 1", len(row.Observations))
	}
	if row.UserId != userId {
		t.Errorf("UserId = %v, want %v", row.UserId, userId)
	}
}

func TestApplyTrimsObservationHistory(t *testing.T) {
	repo := newFakeMasteryRepo()
	userId := uuid.New()

	seeded := make([]entity.ConceptObservation, entity.ObservationHistoryCap)
	for i := range seeded {
		seeded[i] = entity.ConceptObservation{
			ConceptKey: "names_racing_thoughts",
			Confidence: 5,
			Evidence:   fmt.Sprintf("evidence-%d", i),
		}
	}
	repo.rows["names_racing_thoughts"] = &entity.ConceptMastery{
		Id:                 uuid.New(),
		UserId:             userId,
		ConceptKey:         "names_racing_thoughts",
		UnderstandingLevel: 4,
		EncounterCount:     5,
		Observations:       seeded,
	}

	updater := NewUpdater(&fakeFactory{repo: repo}, nopLogger{})
	updated, err := updater.Apply(context.Background(), userId, []entity.ConceptObservation{
		{ConceptKey: "names_racing_thoughts", Confidence: 8, Evidence: "evidence-new"},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if updated != 1 {
		t.Fatalf("Apply() updated = %d, want 1", updated)
	}

	row := repo.rows["names_racing_thoughts"]
	if row.UnderstandingLevel != Smooth(4, 8, 5) {
		t.Errorf("UnderstandingLevel = %d, want %d", row.UnderstandingLevel, Smooth(4, 8, 5))
	}
	if row.EncounterCount != 6 {
		t.Errorf("EncounterCount = %d, want 6", row.EncounterCount)
	}
	if len(row.Observations) != entity.ObservationHistoryCap {
		t.Fatalf("Observations = %d, want capped at %d", len(row.Observations), entity.ObservationHistoryCap)
	}
	if row.Observations[0].Evidence != "evidence-1" {
		t.Errorf("oldest retained observation = %q, want the second seeded one", row.Observations[0].Evidence)
	}
	if row.Observations[len(row.Observations)-1].Evidence != "evidence-new" {
		t.Errorf("newest observation = %q, want evidence-new", row.Observations[len(row.Observations)-1].Evidence)
	}
}

func TestApplyAggregatesRowErrors(t *testing.T) {
	repo := newFakeMasteryRepo()
	repo.failKey = "tracks_sleep_pressure"

	updater := NewUpdater(&fakeFactory{repo: repo}, nopLogger{})
	updated, err := updater.Apply(context.Background(), uuid.New(), []entity.ConceptObservation{
		{ConceptKey: "names_racing_thoughts", Confidence: 6},
		{ConceptKey: "tracks_sleep_pressure", Confidence: 4},
		{ConceptKey: "separates_thought_from_fact", Confidence: 9},
	})

	if updated != 2 {
		t.Errorf("Apply() updated = %d, want 2", updated)
	}

	var aggregate *ConceptUpdateError
	if !errors.As(err, &aggregate) {
		t.Fatalf("Apply() error = %v, want *ConceptUpdateError", err)
	}
	if len(aggregate.Failures) != 1 {
		t.Fatalf("Failures = %d, want 1", len(aggregate.Failures))
	}
	if _, ok := aggregate.Failures["tracks_sleep_pressure"]; !ok {
		t.Error("Failures missing the failed concept key")
	}

	if repo.rows["names_racing_thoughts"] == nil || repo.rows["separates_thought_from_fact"] == nil {
		t.Error("row error aborted the rest of the batch")
	}
	if repo.rows["tracks_sleep_pressure"] != nil {
		t.Error("failed observation must not be written")
	}
}
