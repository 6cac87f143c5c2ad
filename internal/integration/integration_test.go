package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/corpus"
	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/server"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/pageza/mealplanner/backend/internal/types"
)

const jwtSecret = "integration-secret"

const recipesCSV = `id,name,description,ingredients,steps,minutes,tags
10,Chicken Soup,Warming chicken broth,"['chicken', 'carrot', 'onion']","['simmer', 'serve']",30,"['dinner', 'gluten-free']"
11,Vegetarian Pasta,Weeknight noodles,"['penne', 'tomato', 'onion']","['boil', 'toss']",20,"['vegetarian', 'italian', 'dinner']"
12,Beef Steak,Seared ribeye,"['ribeye', 'butter', 'black pepper']","['sear', 'rest']",45,"['dinner']"
`

type app struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newApp(t *testing.T, withIndex bool) *app {
	t.Helper()
	log := zerolog.Nop()

	recipes := service.NewRecommendationService(nil, log)
	if withIndex {
		list, err := corpus.ReadCSV(strings.NewReader(recipesCSV))
		require.NoError(t, err)
		ix, err := engine.Build(list, engine.DefaultOptions())
		require.NoError(t, err)
		recipes.SetIndex(ix)
	}

	db := testdb.SQLite(t)
	cfg := &config.Config{Environment: config.Test, ServerHost: "127.0.0.1", ServerPort: "0"}
	srv := server.New(cfg, api.Services{
		Recipes:       recipes,
		MealPlans:     service.NewMealPlanService(db, recipes, log),
		ShoppingLists: service.NewShoppingListService(db, recipes, log),
		Tokens:        service.NewTokenService(jwtSecret),
	}, log)

	return &app{t: t, handler: srv.Handler(), token: mintToken(t, uuid.New())}
}

func mintToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           userID,
		Username:         "cook",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return token
}

func (a *app) request(method, path string, body any, out any) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestSearchEndToEnd(t *testing.T) {
	a := newApp(t, true)

	var resp types.RecommendResponse
	code := a.request(http.MethodPost, "/api/v1/recipes/recommend", map[string]any{"query": "chicken soup"}, &resp)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, int64(10), resp.Recommendations[0].ID)
	for i := 1; i < len(resp.Recommendations); i++ {
		assert.LessOrEqual(t, resp.Recommendations[i].SimilarityScore, resp.Recommendations[i-1].SimilarityScore)
	}

	code = a.request(http.MethodPost, "/api/v1/recipes/recommend", map[string]any{"query": "pasta", "max_cooking_time": 15}, &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Recommendations)
	assert.Zero(t, resp.Total)

	var results []model.ScoredResult
	code = a.request(http.MethodGet, "/api/v1/recipes/search/quick?q=steak&limit=1", nil, &results)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, results, 1)
	assert.Equal(t, "Beef Steak", results[0].Name)

	var recipe model.Recipe
	require.Equal(t, http.StatusOK, a.request(http.MethodGet, "/api/v1/recipes/11", nil, &recipe))
	assert.Equal(t, "Vegetarian Pasta", recipe.Name)
	assert.Equal(t, http.StatusNotFound, a.request(http.MethodGet, "/api/v1/recipes/99", nil, nil))
}

func TestSearchBeforeIndexIsReady(t *testing.T) {
	a := newApp(t, false)

	code := a.request(http.MethodPost, "/api/v1/recipes/recommend", map[string]any{"query": "soup"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)

	var health types.HealthResponse
	require.Equal(t, http.StatusOK, a.request(http.MethodGet, "/health", nil, &health))
	assert.False(t, health.EngineReady)
}

func TestMealPlanToShoppingList(t *testing.T) {
	a := newApp(t, true)

	var plan model.MealPlan
	code := a.request(http.MethodPost, "/api/v1/meal-plans", types.CreateMealPlanRequest{WeekStartDate: "2024-03-04", WeekEndDate: "2024-03-10"}, &plan)
	require.Equal(t, http.StatusCreated, code)
	planPath := "/api/v1/meal-plans/" + plan.ID.String()

	for _, meal := range []map[string]any{
		{"recipe_id": 10, "day_of_week": "Monday", "meal_type": "dinner"},
		{"recipe_id": 11, "day_of_week": "Tuesday", "meal_type": "dinner"},
	} {
		require.Equal(t, http.StatusCreated, a.request(http.MethodPost, planPath+"/meals", meal, nil))
	}
	assert.Equal(t, http.StatusNotFound, a.request(http.MethodPost, planPath+"/meals",
		map[string]any{"recipe_id": 99, "day_of_week": "monday", "meal_type": "lunch"}, nil))

	var list model.ShoppingList
	code = a.request(http.MethodPost, "/api/v1/shopping-lists/generate", map[string]string{"plan_id": plan.ID.String()}, &list)
	require.Equal(t, http.StatusCreated, code)

	var onion model.ShoppingListItem
	for _, item := range list.Items {
		if item.IngredientName == "onion" {
			onion = item
		}
	}
	require.NotEqual(t, uuid.Nil, onion.ID)
	assert.Equal(t, 2.0, onion.Quantity)
	assert.Equal(t, "vegetables", onion.Category)

	itemPath := fmt.Sprintf("/api/v1/shopping-lists/%s/items/%s", list.ID, onion.ID)
	var updated model.ShoppingListItem
	require.Equal(t, http.StatusOK, a.request(http.MethodPatch, itemPath, map[string]bool{"is_checked": true}, &updated))
	assert.True(t, updated.IsChecked)

	var byPlan model.ShoppingList
	require.Equal(t, http.StatusOK, a.request(http.MethodGet, "/api/v1/shopping-lists/plan/"+plan.ID.String(), nil, &byPlan))
	assert.Equal(t, list.ID, byPlan.ID)

	// Another user sees none of it.
	a.token = mintToken(t, uuid.New())
	assert.Equal(t, http.StatusNotFound, a.request(http.MethodGet, planPath, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.request(http.MethodPatch, itemPath, map[string]bool{"is_checked": false}, nil))
}
