package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"codeforge/internal/cache"
	apperrors "codeforge/internal/errors"
	"codeforge/internal/model"
)

// MockLanguageRepository is a mock implementation of LanguageRepository.
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) List(ctx context.Context) ([]model.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Language), args.Error(1)
}

func (m *MockLanguageRepository) FindByID(ctx context.Context, id uint) (*model.Language, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Language), args.Error(1)
}

func (m *MockLanguageRepository) FindBySlug(ctx context.Context, slug string) (*model.Language, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Language), args.Error(1)
}

func (m *MockLanguageRepository) Upsert(ctx context.Context, language *model.Language) error {
	args := m.Called(ctx, language)
	return args.Error(0)
}

// A nil cache client behaves as a permanent miss, so these tests run without
// Redis.
var noCache *cache.Client

func TestLanguageService_ListAll(t *testing.T) {
	catalog := []model.Language{
		{ID: 5, Name: "Go", Slug: "go"},
		{ID: 1, Name: "Python", Slug: "python"},
	}

	mockRepo := new(MockLanguageRepository)
	mockRepo.On("List", mock.Anything).Return(catalog, nil)

	service := NewLanguageService(mockRepo, noCache)
	languages, err := service.ListAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, catalog, languages)
	mockRepo.AssertExpectations(t)
}

func TestLanguageService_GetByID(t *testing.T) {
	mockRepo := new(MockLanguageRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Language{ID: 1, Name: "Python", Slug: "python"}, nil)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewLanguageService(mockRepo, noCache)

	language, err := service.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "python", language.Slug)

	language, err = service.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrLanguageNotFound)
	assert.Nil(t, language)
}

func TestLanguageService_GetBySlug(t *testing.T) {
	mockRepo := new(MockLanguageRepository)
	mockRepo.On("FindBySlug", mock.Anything, "go").Return(&model.Language{ID: 5, Name: "Go", Slug: "go"}, nil)
	mockRepo.On("FindBySlug", mock.Anything, "cobol").Return(nil, gorm.ErrRecordNotFound)

	service := NewLanguageService(mockRepo, noCache)

	language, err := service.GetBySlug(context.Background(), "go")
	assert.NoError(t, err)
	assert.Equal(t, uint(5), language.ID)

	_, err = service.GetBySlug(context.Background(), "cobol")
	assert.ErrorIs(t, err, apperrors.ErrLanguageNotFound)
}

func TestLanguageService_Seed(t *testing.T) {
	mockRepo := new(MockLanguageRepository)
	mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Language")).Return(nil).Times(len(SeedLanguages))
	mockRepo.On("List", mock.Anything).Return(SeedLanguages, nil)

	service := NewLanguageService(mockRepo, noCache)
	languages, err := service.Seed(context.Background())

	assert.NoError(t, err)
	assert.Len(t, languages, len(SeedLanguages))
	mockRepo.AssertExpectations(t)
}
