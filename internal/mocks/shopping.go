package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
)

// MockShoppingListService is a mock implementation of the shopping list service
type MockShoppingListService struct {
	mock.Mock
}

var _ service.IShoppingListService = (*MockShoppingListService)(nil)

func (m *MockShoppingListService) list(args mock.Arguments) (*model.ShoppingList, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) Generate(ctx context.Context, userID, planID uuid.UUID) (*model.ShoppingList, error) {
	return m.list(m.Called(ctx, userID, planID))
}

func (m *MockShoppingListService) List(ctx context.Context, userID uuid.UUID) ([]model.ShoppingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) Get(ctx context.Context, userID, listID uuid.UUID) (*model.ShoppingList, error) {
	return m.list(m.Called(ctx, userID, listID))
}

func (m *MockShoppingListService) GetByPlan(ctx context.Context, userID, planID uuid.UUID) (*model.ShoppingList, error) {
	return m.list(m.Called(ctx, userID, planID))
}

func (m *MockShoppingListService) SetChecked(ctx context.Context, userID, listID, itemID uuid.UUID, checked bool) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, userID, listID, itemID, checked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingListService) DeleteItem(ctx context.Context, userID, listID, itemID uuid.UUID) error {
	return m.Called(ctx, userID, listID, itemID).Error(0)
}

func (m *MockShoppingListService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	return m.Called(ctx, userID, listID).Error(0)
}
