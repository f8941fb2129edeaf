package implementation

import (
	"context"
	"errors"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/mapper"
	"companion-chat-be/internal/model"
	"companion-chat-be/internal/repository/contract"
	"companion-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConceptMasteryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MasteryMapper
}

func NewConceptMasteryRepository(db *gorm.DB) contract.ConceptMasteryRepository {
	return &ConceptMasteryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMasteryMapper(),
	}
}

func (r *ConceptMasteryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConceptMasteryRepositoryImpl) Create(ctx context.Context, mastery *entity.ConceptMastery) error {
	m, err := r.mapper.ToModel(mastery)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mastery = *r.mapper.ToEntity(m)
	return nil
}

// FindForUpdate takes a row lock so concurrent observation batches for the
// same (user, concept) serialize instead of overwriting each other.
// Only meaningful inside a transaction.
func (r *ConceptMasteryRepositoryImpl) FindForUpdate(ctx context.Context, userId uuid.UUID, conceptKey string) (*entity.ConceptMastery, error) {
	var m model.ConceptMastery
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND concept_key = ?", userId, conceptKey).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConceptMasteryRepositoryImpl) Update(ctx context.Context, mastery *entity.ConceptMastery) error {
	m, err := r.mapper.ToModel(mastery)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*mastery = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConceptMasteryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConceptMastery, error) {
	var m model.ConceptMastery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConceptMasteryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConceptMastery, error) {
	var models []*model.ConceptMastery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ConceptMastery, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ConceptMasteryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ConceptMastery{}).Count(&count).Error
	return count, err
}
