package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"plateful/backend/internal/middleware"
	"plateful/backend/internal/repository"
	"plateful/backend/internal/services"
)

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	Collections   repository.CollectionRepository
	MealPlans     repository.MealPlanRepository
	Favorites     repository.FavoriteRepository
	ShoppingLists repository.ShoppingListRepository
	Recipes       *services.SpoonacularClient
	Images        *services.ImageHost
	Logger        *logrus.Logger
}

// New creates a Handler.
func New(
	collections repository.CollectionRepository,
	mealPlans repository.MealPlanRepository,
	favorites repository.FavoriteRepository,
	shoppingLists repository.ShoppingListRepository,
	recipes *services.SpoonacularClient,
	images *services.ImageHost,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		Collections:   collections,
		MealPlans:     mealPlans,
		Favorites:     favorites,
		ShoppingLists: shoppingLists,
		Recipes:       recipes,
		Images:        images,
		Logger:        logger,
	}
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireUser returns the authenticated user id. The auth middleware has
// already rejected unauthenticated requests; an empty id here means the
// response was sent and the handler must do nothing further.
func (h *Handler) requireUser(c *gin.Context) (string, bool) {
	userID := middleware.UserFromContext(c.Request.Context())
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

// respondError maps a repository or upstream error to its status code.
// Ownership misses and truly absent records are both 404 on purpose.
func (h *Handler) respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, services.ErrQuotaExceeded):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":   "quota exceeded",
			"message": "The recipe API daily quota is exhausted. Please try again later.",
		})
	default:
		h.Logger.WithError(err).Errorf("failed to %s", action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action, "message": err.Error()})
	}
}
