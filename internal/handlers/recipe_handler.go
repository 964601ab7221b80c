package handlers

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
)

var recipeIDPattern = regexp.MustCompile(`^\d+$`)

// numberParam parses an optional count query parameter with a default and
// an inclusive range. ok is false when the value is present but invalid.
func numberParam(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

// SearchRecipes proxies a recipe search to the upstream API, forwarding
// every filter parameter verbatim.
func (h *Handler) SearchRecipes(c *gin.Context) {
	searchTerm := c.Query("searchTerm")
	if searchTerm == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "searchTerm is required"})
		return
	}

	page := 0
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a non-negative integer"})
			return
		}
		page = n
	}

	filters := url.Values{}
	for key, vals := range c.Request.URL.Query() {
		if key == "searchTerm" || key == "page" {
			continue
		}
		for _, v := range vals {
			filters.Add(key, v)
		}
	}

	result, err := h.Recipes.SearchRecipes(c.Request.Context(), searchTerm, page, filters)
	if err != nil {
		h.respondError(c, err, "search recipes")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// AutocompleteRecipes suggests recipe titles for a partial query.
func (h *Handler) AutocompleteRecipes(c *gin.Context) {
	query := c.Query("query")
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must be at least 2 characters"})
		return
	}
	number, ok := numberParam(c, "number", 10, 1, 25)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be between 1 and 25"})
		return
	}

	result, err := h.Recipes.Autocomplete(c.Request.Context(), query, number)
	if err != nil {
		h.respondError(c, err, "autocomplete recipes")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// GetRecipeSummary proxies the short summary of one recipe.
func (h *Handler) GetRecipeSummary(c *gin.Context) {
	id := c.Param("id")
	if !recipeIDPattern.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be numeric"})
		return
	}

	result, err := h.Recipes.Summary(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "fetch recipe summary")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// GetSimilarRecipes proxies the similar-recipes listing for one recipe.
func (h *Handler) GetSimilarRecipes(c *gin.Context) {
	id := c.Param("id")
	if !recipeIDPattern.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be numeric"})
		return
	}
	number, ok := numberParam(c, "number", 10, 1, 100)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be between 1 and 100"})
		return
	}

	result, err := h.Recipes.Similar(c.Request.Context(), id, number)
	if err != nil {
		h.respondError(c, err, "fetch similar recipes")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// GetWinePairing proxies wine suggestions for a food.
func (h *Handler) GetWinePairing(c *gin.Context) {
	food := c.Query("food")
	if food == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food is required"})
		return
	}

	result, err := h.Recipes.WinePairing(c.Request.Context(), food, c.Query("maxPrice"))
	if err != nil {
		h.respondError(c, err, "fetch wine pairing")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// GetWineDishes proxies dish suggestions for a wine.
func (h *Handler) GetWineDishes(c *gin.Context) {
	wine := c.Query("wine")
	if wine == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wine is required"})
		return
	}

	result, err := h.Recipes.WineDishes(c.Request.Context(), wine)
	if err != nil {
		h.respondError(c, err, "fetch wine dishes")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}
