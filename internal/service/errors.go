package service

import "errors"

var (
	ErrEngineUnavailable    = errors.New("recipe data is not available")
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrMealPlanNotFound     = errors.New("meal plan not found")
	ErrMealPlanItemNotFound = errors.New("meal plan item not found")
	ErrMealPlanEmpty        = errors.New("meal plan has no meals")
	ErrShoppingListNotFound = errors.New("shopping list not found")
	ErrShoppingItemNotFound = errors.New("shopping list item not found")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrInvalidDay           = errors.New("invalid day of week")
	ErrInvalidMealType      = errors.New("invalid meal type")
)
