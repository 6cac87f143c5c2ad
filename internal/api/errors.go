package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
)

// respondError maps service errors onto HTTP responses. Anything unknown is
// attached to the context for the error middleware and reported as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEngineUnavailable):
		c.JSON(http.StatusServiceUnavailable, middleware.ErrorResponse{
			Error: "recipe search is not available yet",
			Code:  "engine_unavailable",
		})
	case errors.Is(err, engine.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be empty"})
	case errors.Is(err, service.ErrInvalidDay),
		errors.Is(err, service.ErrInvalidMealType),
		errors.Is(err, service.ErrMealPlanEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrMealPlanNotFound),
		errors.Is(err, service.ErrMealPlanItemNotFound),
		errors.Is(err, service.ErrShoppingListNotFound),
		errors.Is(err, service.ErrShoppingItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func userID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return id, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
