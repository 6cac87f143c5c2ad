package types

import (
	"encoding/json"
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// StringList accepts either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single = strings.TrimSpace(single); single == "" {
			*l = nil
		} else {
			*l = StringList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// RecommendRequest is the body of POST /recipes/recommend.
type RecommendRequest struct {
	Query               string     `json:"query" binding:"required"`
	NRecommendations    int        `json:"n_recommendations" binding:"omitempty,min=0,max=100"`
	DietaryRestrictions StringList `json:"dietary_restrictions"`
	MaxCookingTime      *int       `json:"max_cooking_time" binding:"omitempty,min=0"`
	Difficulty          string     `json:"difficulty"`
	Cuisine             string     `json:"cuisine"`
	MealType            string     `json:"meal_type"`
}

// RecommendResponse wraps ranked recipes.
type RecommendResponse struct {
	Recommendations []model.ScoredResult `json:"recommendations"`
	Query           string               `json:"query"`
	Total           int                  `json:"total"`
}

// CreateMealPlanRequest opens a plan for one week. Dates are stored as given.
type CreateMealPlanRequest struct {
	WeekStartDate string `json:"week_start_date" binding:"required"`
	WeekEndDate   string `json:"week_end_date" binding:"required"`
}

// AddMealRequest places a recipe in a plan slot.
type AddMealRequest struct {
	RecipeID  *int64 `json:"recipe_id" binding:"required"`
	DayOfWeek string `json:"day_of_week" binding:"required"`
	MealType  string `json:"meal_type" binding:"required"`
	Date      string `json:"date"`
}

// GenerateShoppingListRequest builds a list from a plan.
type GenerateShoppingListRequest struct {
	PlanID string `json:"plan_id" binding:"required,uuid"`
}

// UpdateShoppingItemRequest sets the checked state of one list item.
type UpdateShoppingItemRequest struct {
	IsChecked *bool `json:"is_checked" binding:"required"`
}

// HealthResponse reports process and engine readiness.
type HealthResponse struct {
	Status      string `json:"status"`
	EngineReady bool   `json:"engine_ready"`
	Recipes     int    `json:"recipes"`
	Fingerprint string `json:"fingerprint,omitempty"`
}
