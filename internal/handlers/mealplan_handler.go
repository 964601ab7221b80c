package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"plateful/backend/internal/models"
)

const weekStartLayout = "2006-01-02"

var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

func validWeekStart(weekStart string) bool {
	_, err := time.Parse(weekStartLayout, weekStart)
	return err == nil
}

// GetMealPlan returns the caller's plan for the requested week. A week
// without a plan yields an empty item list, not a 404.
func (h *Handler) GetMealPlan(c *gin.Context) {
	weekStart := c.Query("weekStart")
	if !validWeekStart(weekStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekStart must be a YYYY-MM-DD date"})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	plan, items, err := h.MealPlans.GetByWeek(c.Request.Context(), userID, weekStart)
	if err != nil {
		h.respondError(c, err, "fetch meal plan")
		return
	}
	if plan == nil {
		c.JSON(http.StatusOK, gin.H{"weekStart": weekStart, "items": []models.MealPlanItem{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        plan.ID,
		"weekStart": plan.WeekStart,
		"createdAt": plan.CreatedAt,
		"updatedAt": plan.UpdatedAt,
		"items":     items,
	})
}

// AddMealPlanItemPayload defines the expected JSON for scheduling a recipe.
// DayOfWeek is a pointer so that 0 (Monday) survives required-validation.
type AddMealPlanItemPayload struct {
	WeekStart   string `json:"weekStart" binding:"required"`
	RecipeID    int    `json:"recipeId" binding:"required"`
	RecipeTitle string `json:"recipeTitle" binding:"required"`
	RecipeImage string `json:"recipeImage"`
	DayOfWeek   *int   `json:"dayOfWeek" binding:"required"`
	MealType    string `json:"mealType" binding:"required"`
	Servings    int    `json:"servings"`
}

// AddMealPlanItem schedules a recipe into a slot of the week, creating the
// week's plan on first use.
func (h *Handler) AddMealPlanItem(c *gin.Context) {
	var payload AddMealPlanItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	if !validWeekStart(payload.WeekStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekStart must be a YYYY-MM-DD date"})
		return
	}
	if *payload.DayOfWeek < 0 || *payload.DayOfWeek > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dayOfWeek must be between 0 and 6"})
		return
	}
	if !mealTypes[payload.MealType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mealType must be breakfast, lunch, dinner or snack"})
		return
	}
	servings := payload.Servings
	if servings == 0 {
		servings = 1
	}
	if servings < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "servings must be at least 1"})
		return
	}

	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	item := &models.MealPlanItem{
		RecipeID:    payload.RecipeID,
		RecipeTitle: payload.RecipeTitle,
		RecipeImage: payload.RecipeImage,
		DayOfWeek:   *payload.DayOfWeek,
		MealType:    payload.MealType,
		Servings:    servings,
	}
	created, err := h.MealPlans.AddItem(c.Request.Context(), userID, payload.WeekStart, item)
	if err != nil {
		h.respondError(c, err, "add meal plan item")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveMealPlanItem removes one scheduled recipe from a week plan.
func (h *Handler) RemoveMealPlanItem(c *gin.Context) {
	weekStart := c.Query("weekStart")
	if !validWeekStart(weekStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekStart must be a YYYY-MM-DD date"})
		return
	}
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	err := h.MealPlans.RemoveItem(c.Request.Context(), userID, weekStart, c.Param("itemId"))
	if err != nil {
		h.respondError(c, err, "remove meal plan item")
		return
	}
	c.Status(http.StatusNoContent)
}
