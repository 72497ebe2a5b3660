package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "codeforge/internal/errors"
	"codeforge/internal/model"
	"codeforge/internal/repository"
)

// MaxPageSize caps the history page size; larger requests are clamped, not
// rejected.
const MaxPageSize = 50

// CodeGenerator is the text-generation capability the orchestrator depends
// on. Satisfied by genai.Client in production and by stubs in tests.
type CodeGenerator interface {
	GenerateCode(ctx context.Context, prompt, language string) (string, error)
}

// GenerationView is the API shape of a stored generation: the language's
// external slug stands in for its internal id.
type GenerationView struct {
	ID        uint      `json:"id"`
	Prompt    string    `json:"prompt"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// Pagination describes one page of history results.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrevious  bool  `json:"hasPrevious"`
}

// PaginatedHistory is one page of a user's generations plus paging metadata.
type PaginatedHistory struct {
	Data       []GenerationView `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// GenerationService orchestrates the generate and history operations.
type GenerationService interface {
	Generate(ctx context.Context, userID uint, prompt string, languageID uint) (*GenerationView, error)
	GetHistory(ctx context.Context, userID uint, page, limit int) (*PaginatedHistory, error)
}

type generationService struct {
	generationRepo  repository.GenerationRepository
	languageService LanguageService
	generator       CodeGenerator
}

// NewGenerationService creates a new generation orchestrator.
func NewGenerationService(generationRepo repository.GenerationRepository, languageService LanguageService, generator CodeGenerator) GenerationService {
	return &generationService{
		generationRepo:  generationRepo,
		languageService: languageService,
		generator:       generator,
	}
}

// Generate resolves the language, calls the provider once, and persists the
// prompt/response pair. Provider error kinds propagate to the caller
// unchanged; an unknown language writes nothing.
func (s *generationService) Generate(ctx context.Context, userID uint, prompt string, languageID uint) (*GenerationView, error) {
	language, err := s.languageService.GetByID(ctx, languageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLanguageNotFound) {
			return nil, apperrors.ErrInvalidLanguage
		}
		return nil, err
	}

	code, err := s.generator.GenerateCode(ctx, prompt, language.Name)
	if err != nil {
		return nil, err
	}

	generation := &model.Generation{
		UserID:     userID,
		LanguageID: language.ID,
		Prompt:     prompt,
		Code:       code,
	}
	if err := s.generationRepo.Create(ctx, generation); err != nil {
		return nil, fmt.Errorf("create generation: %w", err)
	}

	return &GenerationView{
		ID:        generation.ID,
		Prompt:    generation.Prompt,
		Language:  language.Slug,
		Code:      generation.Code,
		Timestamp: generation.CreatedAt,
	}, nil
}

// GetHistory returns one page of the user's generations, newest first. Page
// is clamped to a minimum of 1 and limit into [1, MaxPageSize].
func (s *generationService) GetHistory(ctx context.Context, userID uint, page, limit int) (*PaginatedHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := (page - 1) * limit

	totalItems, err := s.generationRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count generations: %w", err)
	}

	generations, err := s.generationRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}

	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))

	views := make([]GenerationView, 0, len(generations))
	for _, generation := range generations {
		views = append(views, GenerationView{
			ID:        generation.ID,
			Prompt:    generation.Prompt,
			Language:  generation.Language.Slug,
			Code:      generation.Code,
			Timestamp: generation.CreatedAt,
		})
	}

	return &PaginatedHistory{
		Data: views,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   totalItems,
			ItemsPerPage: limit,
			HasNext:      page < totalPages,
			HasPrevious:  page > 1,
		},
	}, nil
}
