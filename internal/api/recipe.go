package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecommendationService
}

func NewRecipeHandler(recipes service.IRecommendationService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/recommend", h.Recommend)
		recipes.GET("/search/quick", h.QuickSearch)
		recipes.GET("/:id", h.GetRecipe)
	}
}

func (h *RecipeHandler) Recommend(c *gin.Context) {
	var req types.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := engine.Query{
		Text:  req.Query,
		Limit: req.NRecommendations,
		Filters: engine.Filters{
			DietaryRestrictions: req.DietaryRestrictions,
			MaxCookingTime:      req.MaxCookingTime,
			Difficulty:          req.Difficulty,
			Cuisine:             req.Cuisine,
			MealType:            req.MealType,
		},
	}
	results, err := h.recipes.Recommend(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecommendResponse{
		Recommendations: results,
		Query:           req.Query,
		Total:           len(results),
	})
}

func (h *RecipeHandler) QuickSearch(c *gin.Context) {
	text := strings.TrimSpace(c.Query("q"))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := engine.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > engine.MaxQuickSearchLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(engine.MaxQuickSearchLimit)})
			return
		}
		limit = n
	}

	results, err := h.recipes.QuickSearch(c.Request.Context(), text, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
