package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"codeforge/internal/cache"
	apperrors "codeforge/internal/errors"
	"codeforge/internal/model"
	"codeforge/internal/repository"
)

const (
	languageListCacheKey = "languages:all"
	languageListCacheTTL = 5 * time.Minute
)

// SeedLanguages is the default catalog written by the seed command and the
// seed endpoint. Upserts are keyed on slug, so reseeding is idempotent.
var SeedLanguages = []model.Language{
	{Name: "Python", Slug: "python"},
	{Name: "JavaScript", Slug: "javascript"},
	{Name: "TypeScript", Slug: "typescript"},
	{Name: "Java", Slug: "java"},
	{Name: "C++", Slug: "cpp"},
	{Name: "C#", Slug: "csharp"},
	{Name: "Go", Slug: "go"},
	{Name: "Rust", Slug: "rust"},
}

// LanguageService exposes the read-mostly language catalog.
type LanguageService interface {
	ListAll(ctx context.Context) ([]model.Language, error)
	GetByID(ctx context.Context, id uint) (*model.Language, error)
	GetBySlug(ctx context.Context, slug string) (*model.Language, error)
	Seed(ctx context.Context) ([]model.Language, error)
}

type languageService struct {
	languageRepo repository.LanguageRepository
	cache        *cache.Client
}

// NewLanguageService creates a new language catalog service.
func NewLanguageService(languageRepo repository.LanguageRepository, cacheClient *cache.Client) LanguageService {
	return &languageService{
		languageRepo: languageRepo,
		cache:        cacheClient,
	}
}

// ListAll returns all languages ordered by display name, read through a
// short-lived Redis cache. Staleness within the TTL is tolerable because the
// catalog only changes when reseeded.
func (s *languageService) ListAll(ctx context.Context) ([]model.Language, error) {
	var cached []model.Language
	if s.cache.GetJSON(ctx, languageListCacheKey, &cached) {
		return cached, nil
	}

	languages, err := s.languageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	_ = s.cache.SetJSON(ctx, languageListCacheKey, languages, languageListCacheTTL)
	return languages, nil
}

func (s *languageService) GetByID(ctx context.Context, id uint) (*model.Language, error) {
	language, err := s.languageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLanguageNotFound
		}
		return nil, fmt.Errorf("find language: %w", err)
	}
	return language, nil
}

func (s *languageService) GetBySlug(ctx context.Context, slug string) (*model.Language, error) {
	language, err := s.languageRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLanguageNotFound
		}
		return nil, fmt.Errorf("find language: %w", err)
	}
	return language, nil
}

// Seed upserts the default catalog and invalidates the cached list. Runs out
// of the generation request path.
func (s *languageService) Seed(ctx context.Context) ([]model.Language, error) {
	for i := range SeedLanguages {
		language := SeedLanguages[i]
		if err := s.languageRepo.Upsert(ctx, &language); err != nil {
			return nil, fmt.Errorf("upsert language %s: %w", language.Slug, err)
		}
	}

	_ = s.cache.Delete(ctx, languageListCacheKey)
	return s.languageRepo.List(ctx)
}
