package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
)

// MockRecommendationService is a mock implementation of the recommendation service
type MockRecommendationService struct {
	mock.Mock
}

var _ service.IRecommendationService = (*MockRecommendationService)(nil)

// Recommend mocks the Recommend method
func (m *MockRecommendationService) Recommend(ctx context.Context, q engine.Query) ([]model.ScoredResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScoredResult), args.Error(1)
}

// QuickSearch mocks the QuickSearch method
func (m *MockRecommendationService) QuickSearch(ctx context.Context, text string, limit int) ([]model.ScoredResult, error) {
	args := m.Called(ctx, text, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScoredResult), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecommendationService) GetRecipe(ctx context.Context, id int64) (model.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Recipe), args.Error(1)
}

// Status mocks the Status method
func (m *MockRecommendationService) Status() service.Status {
	return m.Called().Get(0).(service.Status)
}
