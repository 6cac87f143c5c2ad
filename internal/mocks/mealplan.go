package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// MockMealPlanService is a mock implementation of the meal plan service
type MockMealPlanService struct {
	mock.Mock
}

var _ service.IMealPlanService = (*MockMealPlanService)(nil)

func (m *MockMealPlanService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateMealPlanRequest) (*model.MealPlan, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) List(ctx context.Context, userID uuid.UUID) ([]model.MealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*model.MealPlan, error) {
	args := m.Called(ctx, userID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) AddMeal(ctx context.Context, userID, planID uuid.UUID, req *types.AddMealRequest) (*model.MealPlanItem, error) {
	args := m.Called(ctx, userID, planID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlanItem), args.Error(1)
}

func (m *MockMealPlanService) RemoveMeal(ctx context.Context, userID, planID, itemID uuid.UUID) error {
	return m.Called(ctx, userID, planID, itemID).Error(0)
}

func (m *MockMealPlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	return m.Called(ctx, userID, planID).Error(0)
}
