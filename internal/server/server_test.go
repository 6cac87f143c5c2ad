package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/mocks"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
)

func newTestServer() (*Server, *mocks.MockRecommendationService) {
	cfg := &config.Config{
		Environment: config.Test,
		ServerHost:  "localhost",
		ServerPort:  "8080",
		CORSOrigins: []string{"http://localhost:3000"},
	}
	recipes := new(mocks.MockRecommendationService)
	srv := New(cfg, api.Services{
		Recipes:       recipes,
		MealPlans:     new(mocks.MockMealPlanService),
		ShoppingLists: new(mocks.MockShoppingListService),
		Tokens:        new(mocks.MockTokenService),
	}, zerolog.Nop())
	return srv, recipes
}

func TestNew(t *testing.T) {
	srv, recipes := newTestServer()
	recipes.On("Status").Return(service.Status{Ready: true, Recipes: 3})

	assert.Equal(t, "localhost:8080", srv.http.Addr)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"engine_ready":true`)
}

func TestEngineUnavailable(t *testing.T) {
	srv, recipes := newTestServer()
	recipes.On("GetRecipe", mock.Anything, int64(1)).Return(model.Recipe{}, service.ErrEngineUnavailable)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/1", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer()
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
