package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type MealPlanHandler struct {
	plans service.IMealPlanService
}

func NewMealPlanHandler(plans service.IMealPlanService) *MealPlanHandler {
	return &MealPlanHandler{plans: plans}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("", h.Create)
		plans.GET("", h.List)
		plans.GET("/:plan_id", h.Get)
		plans.DELETE("/:plan_id", h.Delete)
		plans.POST("/:plan_id/meals", h.AddMeal)
		plans.DELETE("/:plan_id/meals/:item_id", h.RemoveMeal)
	}
}

func (h *MealPlanHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), uid, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *MealPlanHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	plans, err := h.plans.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "plan_id")
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), uid, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) AddMeal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "plan_id")
	if !ok {
		return
	}
	var req types.AddMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.plans.AddMeal(c.Request.Context(), uid, planID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MealPlanHandler) RemoveMeal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "plan_id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.plans.RemoveMeal(c.Request.Context(), uid, planID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal removed successfully"})
}

func (h *MealPlanHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "plan_id")
	if !ok {
		return
	}
	if err := h.plans.Delete(c.Request.Context(), uid, planID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal plan deleted successfully"})
}
