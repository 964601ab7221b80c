package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plateful/backend/internal/services"
)

// favoritePlaceholder stands in for a recipe whose details could not be
// fetched because the upstream quota is exhausted.
type favoritePlaceholder struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	DetailsUnavailable bool   `json:"detailsUnavailable"`
}

// ListFavorites returns the caller's favorites enriched with recipe details
// from the upstream API. When the upstream quota is exhausted the listing
// degrades to bare ids with placeholder titles instead of failing.
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	favorites, err := h.Favorites.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "fetch favorites")
		return
	}
	if len(favorites) == 0 {
		c.JSON(http.StatusOK, gin.H{"favorites": []favoritePlaceholder{}})
		return
	}

	ids := make([]int, len(favorites))
	for i, f := range favorites {
		ids[i] = f.RecipeID
	}

	details, err := h.Recipes.RecipeInfoBulk(c.Request.Context(), ids)
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			placeholders := make([]favoritePlaceholder, len(ids))
			for i, id := range ids {
				placeholders[i] = favoritePlaceholder{
					ID:                 id,
					Title:              "Recipe details unavailable",
					DetailsUnavailable: true,
				}
			}
			c.JSON(http.StatusOK, gin.H{
				"favorites": placeholders,
				"message":   "Recipe details are temporarily unavailable because the daily API quota is exhausted.",
			})
			return
		}
		h.respondError(c, err, "fetch favorite details")
		return
	}

	c.Data(http.StatusOK, "application/json", wrapJSONArray("favorites", details))
}

// wrapJSONArray embeds a raw JSON array into {"<key>": <array>} without
// re-decoding it.
func wrapJSONArray(key string, raw []byte) []byte {
	out := make([]byte, 0, len(raw)+len(key)+4)
	out = append(out, '{', '"')
	out = append(out, key...)
	out = append(out, '"', ':')
	out = append(out, raw...)
	out = append(out, '}')
	return out
}

// AddFavoritePayload identifies the recipe to favorite.
type AddFavoritePayload struct {
	RecipeID int `json:"recipeId" binding:"required"`
}

// AddFavorite marks a recipe as a favorite. Adding the same recipe twice
// returns 409.
func (h *Handler) AddFavorite(c *gin.Context) {
	var payload AddFavoritePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	favorite, err := h.Favorites.Add(c.Request.Context(), userID, payload.RecipeID)
	if err != nil {
		h.respondError(c, err, "add favorite")
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite unfavorites a recipe. The operation is idempotent:
// removing a recipe that is not favorited still returns 204.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId must be an integer"})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	if err := h.Favorites.Remove(c.Request.Context(), userID, recipeID); err != nil {
		h.respondError(c, err, "remove favorite")
		return
	}
	c.Status(http.StatusNoContent)
}
