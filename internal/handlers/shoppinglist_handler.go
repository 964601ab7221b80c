package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plateful/backend/internal/models"
)

// ShoppingListPayload defines the expected JSON for creating or replacing a
// shopping list.
type ShoppingListPayload struct {
	Name      string                    `json:"name" binding:"required,min=1"`
	Items     []models.ShoppingListItem `json:"items"`
	Completed bool                      `json:"completed"`
}

// CreateShoppingList creates a shopping list for the caller.
func (h *Handler) CreateShoppingList(c *gin.Context) {
	var payload ShoppingListPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	list := &models.ShoppingList{
		UserID:    userID,
		Name:      payload.Name,
		Items:     payload.Items,
		Completed: payload.Completed,
	}
	created, err := h.ShoppingLists.Create(c.Request.Context(), list)
	if err != nil {
		h.respondError(c, err, "create shopping list")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListShoppingLists returns the caller's shopping lists.
func (h *Handler) ListShoppingLists(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	lists, err := h.ShoppingLists.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "fetch shopping lists")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shoppingLists": lists})
}

// GetShoppingList returns one shopping list.
func (h *Handler) GetShoppingList(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	list, err := h.ShoppingLists.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "fetch shopping list")
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateShoppingList replaces a shopping list's name, items and completion
// flag.
func (h *Handler) UpdateShoppingList(c *gin.Context) {
	var payload ShoppingListPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	list := &models.ShoppingList{
		Name:      payload.Name,
		Items:     payload.Items,
		Completed: payload.Completed,
	}
	updated, err := h.ShoppingLists.Update(c.Request.Context(), userID, c.Param("id"), list)
	if err != nil {
		h.respondError(c, err, "update shopping list")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteShoppingList deletes a shopping list.
func (h *Handler) DeleteShoppingList(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	if err := h.ShoppingLists.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err, "delete shopping list")
		return
	}
	c.Status(http.StatusNoContent)
}
