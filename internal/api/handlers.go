package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Recipes       service.IRecommendationService
	MealPlans     service.IMealPlanService
	ShoppingLists service.IShoppingListService
	Tokens        middleware.TokenValidator
	// RateLimiter guards the recipe search endpoints. Nil disables it.
	RateLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API and the search engine.
func HealthCheck(recipes service.IRecommendationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := recipes.Status()
		resp := types.HealthResponse{
			Status:      "healthy",
			EngineReady: status.Ready,
			Recipes:     status.Recipes,
			Fingerprint: status.Fingerprint,
		}
		if !status.Ready {
			resp.Status = "degraded"
		}
		c.JSON(http.StatusOK, resp)
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	// Health check endpoint (no auth required)
	health := HealthCheck(svc.Recipes)
	router.GET("/health", health)
	router.GET("/api/health", health)

	v1 := router.Group("/api/v1")

	recipes := v1.Group("")
	if svc.Tokens != nil {
		recipes.Use(middleware.OptionalAuth(svc.Tokens))
	}
	if svc.RateLimiter != nil {
		recipes.Use(svc.RateLimiter.RateLimitMiddleware())
	}
	NewRecipeHandler(svc.Recipes).RegisterRoutes(recipes)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(svc.Tokens))
	NewMealPlanHandler(svc.MealPlans).RegisterRoutes(authed)
	NewShoppingListHandler(svc.ShoppingLists).RegisterRoutes(authed)
}
