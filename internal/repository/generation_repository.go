package repository

import (
	"context"

	"gorm.io/gorm"

	"codeforge/internal/model"
)

// GenerationRepository defines persistence operations for stored generations.
type GenerationRepository interface {
	Create(ctx context.Context, generation *model.Generation) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Generation, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type generationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository builds a GORM-backed repository.
func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(ctx context.Context, generation *model.Generation) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

// ListByUser returns the user's generations newest first, with the language
// association preloaded so callers can render the external slug.
func (r *generationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Generation, error) {
	var generations []model.Generation
	err := r.db.WithContext(ctx).
		Preload("Language").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&generations).Error
	if err != nil {
		return nil, err
	}
	return generations, nil
}

func (r *generationRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Generation{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
