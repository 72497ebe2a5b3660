package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codeforge/internal/model"
)

// LanguageRepository defines persistence operations for the language catalog.
type LanguageRepository interface {
	List(ctx context.Context) ([]model.Language, error)
	FindByID(ctx context.Context, id uint) (*model.Language, error)
	FindBySlug(ctx context.Context, slug string) (*model.Language, error)
	Upsert(ctx context.Context, language *model.Language) error
}

type languageRepository struct {
	db *gorm.DB
}

// NewLanguageRepository builds a GORM-backed repository.
func NewLanguageRepository(db *gorm.DB) LanguageRepository {
	return &languageRepository{db: db}
}

func (r *languageRepository) List(ctx context.Context) ([]model.Language, error) {
	var languages []model.Language
	if err := r.db.WithContext(ctx).Order("name asc").Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}

func (r *languageRepository) FindByID(ctx context.Context, id uint) (*model.Language, error) {
	var language model.Language
	if err := r.db.WithContext(ctx).First(&language, id).Error; err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) FindBySlug(ctx context.Context, slug string) (*model.Language, error) {
	var language model.Language
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&language).Error; err != nil {
		return nil, err
	}
	return &language, nil
}

// Upsert inserts the language or updates its display name, keyed on slug.
// Keeps the seed operation idempotent.
func (r *languageRepository) Upsert(ctx context.Context, language *model.Language) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(language).Error
}
