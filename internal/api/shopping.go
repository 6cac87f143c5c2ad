package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type ShoppingListHandler struct {
	lists service.IShoppingListService
}

func NewShoppingListHandler(lists service.IShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{lists: lists}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/shopping-lists")
	{
		lists.POST("/generate", h.Generate)
		lists.GET("", h.List)
		lists.GET("/plan/:plan_id", h.GetByPlan)
		lists.GET("/:list_id", h.Get)
		lists.DELETE("/:list_id", h.Delete)
		lists.PATCH("/:list_id/items/:item_id", h.UpdateItem)
		lists.DELETE("/:list_id/items/:item_id", h.DeleteItem)
	}
}

func (h *ShoppingListHandler) Generate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.GenerateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	planID := uuid.MustParse(req.PlanID)

	list, err := h.lists.Generate(c.Request.Context(), uid, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	lists, err := h.lists.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "list_id")
	if !ok {
		return
	}
	list, err := h.lists.Get(c.Request.Context(), uid, listID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) GetByPlan(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "plan_id")
	if !ok {
		return
	}
	list, err := h.lists.GetByPlan(c.Request.Context(), uid, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) UpdateItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "list_id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "item_id")
	if !ok {
		return
	}
	var req types.UpdateShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.lists.SetChecked(c.Request.Context(), uid, listID, itemID, *req.IsChecked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "list_id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.lists.DeleteItem(c.Request.Context(), uid, listID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (h *ShoppingListHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "list_id")
	if !ok {
		return
	}
	if err := h.lists.Delete(c.Request.Context(), uid, listID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shopping list deleted successfully"})
}
