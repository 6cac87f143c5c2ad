package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// IRecommendationService defines the interface for recipe search operations
type IRecommendationService interface {
	Recommend(ctx context.Context, q engine.Query) ([]model.ScoredResult, error)
	QuickSearch(ctx context.Context, text string, limit int) ([]model.ScoredResult, error)
	GetRecipe(ctx context.Context, id int64) (model.Recipe, error)
	Status() Status
}

// RecipeLookup resolves recipe ids against the loaded corpus.
type RecipeLookup interface {
	GetRecipe(ctx context.Context, id int64) (model.Recipe, error)
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	Create(ctx context.Context, userID uuid.UUID, req *types.CreateMealPlanRequest) (*model.MealPlan, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.MealPlan, error)
	Get(ctx context.Context, userID, planID uuid.UUID) (*model.MealPlan, error)
	AddMeal(ctx context.Context, userID, planID uuid.UUID, req *types.AddMealRequest) (*model.MealPlanItem, error)
	RemoveMeal(ctx context.Context, userID, planID, itemID uuid.UUID) error
	Delete(ctx context.Context, userID, planID uuid.UUID) error
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	Generate(ctx context.Context, userID, planID uuid.UUID) (*model.ShoppingList, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.ShoppingList, error)
	Get(ctx context.Context, userID, listID uuid.UUID) (*model.ShoppingList, error)
	GetByPlan(ctx context.Context, userID, planID uuid.UUID) (*model.ShoppingList, error)
	SetChecked(ctx context.Context, userID, listID, itemID uuid.UUID, checked bool) (*model.ShoppingListItem, error)
	DeleteItem(ctx context.Context, userID, listID, itemID uuid.UUID) error
	Delete(ctx context.Context, userID, listID uuid.UUID) error
}

// ITokenService validates bearer tokens.
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}
