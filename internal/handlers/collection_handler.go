package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plateful/backend/internal/models"
)

// CreateCollectionPayload defines the expected JSON for creating a collection.
type CreateCollectionPayload struct {
	Name        string `json:"name" binding:"required,min=1"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CreateCollection creates a new recipe collection for the caller.
func (h *Handler) CreateCollection(c *gin.Context) {
	var payload CreateCollectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	collection := &models.Collection{
		UserID:      userID,
		Name:        payload.Name,
		Description: payload.Description,
		Color:       payload.Color,
	}
	created, err := h.Collections.Create(c.Request.Context(), collection)
	if err != nil {
		h.respondError(c, err, "create collection")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListCollections returns the caller's collections with item counts.
func (h *Handler) ListCollections(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	collections, err := h.Collections.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "fetch collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// GetCollection returns one collection with its items in display order.
func (h *Handler) GetCollection(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	collection, err := h.Collections.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "fetch collection")
		return
	}
	items, err := h.Collections.ListItems(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "fetch collection items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"collection": collection, "items": items})
}

// UpdateCollectionPayload defines the expected JSON for updating a
// collection. Absent fields are left unchanged.
type UpdateCollectionPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// UpdateCollection updates a collection's name, description or color.
func (h *Handler) UpdateCollection(c *gin.Context) {
	var payload UpdateCollectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}

	fields := map[string]any{}
	if payload.Name != nil {
		if *payload.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
			return
		}
		fields["name"] = *payload.Name
	}
	if payload.Description != nil {
		fields["description"] = *payload.Description
	}
	if payload.Color != nil {
		fields["color"] = *payload.Color
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	updated, err := h.Collections.Update(c.Request.Context(), userID, c.Param("id"), fields)
	if err != nil {
		h.respondError(c, err, "update collection")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCollection deletes a collection and all of its items.
func (h *Handler) DeleteCollection(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	if err := h.Collections.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err, "delete collection")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCollectionItemPayload defines the expected JSON for adding a recipe to
// a collection.
type AddCollectionItemPayload struct {
	RecipeID    int    `json:"recipeId" binding:"required"`
	RecipeTitle string `json:"recipeTitle" binding:"required"`
	RecipeImage string `json:"recipeImage"`
}

// AddCollectionItem appends a recipe to a collection at the next order slot.
func (h *Handler) AddCollectionItem(c *gin.Context) {
	var payload AddCollectionItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	item := &models.CollectionItem{
		RecipeID:    payload.RecipeID,
		RecipeTitle: payload.RecipeTitle,
		RecipeImage: payload.RecipeImage,
	}
	created, err := h.Collections.AddItem(c.Request.Context(), userID, c.Param("id"), item)
	if err != nil {
		h.respondError(c, err, "add collection item")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveCollectionItem removes one item from a collection by item id.
func (h *Handler) RemoveCollectionItem(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	err := h.Collections.RemoveItem(c.Request.Context(), userID, c.Param("id"), c.Param("itemId"))
	if err != nil {
		h.respondError(c, err, "remove collection item")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveItemByRecipePayload identifies the recipe to remove.
type RemoveItemByRecipePayload struct {
	RecipeID int `json:"recipeId" binding:"required"`
}

// RemoveCollectionItemByRecipe removes a recipe from a collection by its
// Spoonacular id.
func (h *Handler) RemoveCollectionItemByRecipe(c *gin.Context) {
	var payload RemoveItemByRecipePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	err := h.Collections.RemoveItemByRecipe(c.Request.Context(), userID, c.Param("id"), payload.RecipeID)
	if err != nil {
		h.respondError(c, err, "remove collection item")
		return
	}
	c.Status(http.StatusNoContent)
}
