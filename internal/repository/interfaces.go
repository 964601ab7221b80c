package repository

import (
	"context"
	"errors"

	"plateful/backend/internal/models"
)

// ErrNotFound is returned when a record does not exist or is not owned by
// the requesting user. The two cases are deliberately indistinguishable so
// that cross-user probing cannot reveal whether a record exists.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint is violated.
var ErrDuplicate = errors.New("record already exists")

// ErrInvalidID is returned when an identifier is not parseable at all.
var ErrInvalidID = errors.New("invalid id")

// CollectionWithCount is a collection plus its item count, for listings.
type CollectionWithCount struct {
	models.Collection
	ItemCount int `json:"itemCount"`
}

// CollectionRepository defines the interface for recipe collection operations.
// All reads and writes are scoped by the owning user id.
type CollectionRepository interface {
	Create(ctx context.Context, c *models.Collection) (*models.Collection, error)
	ListByUser(ctx context.Context, userID string) ([]CollectionWithCount, error)
	GetByID(ctx context.Context, userID, id string) (*models.Collection, error)
	Update(ctx context.Context, userID, id string, fields map[string]any) (*models.Collection, error)
	Delete(ctx context.Context, userID, id string) error

	// AddItem assigns the item order max(existing)+1. The counter is
	// advisory display order: a concurrent add can produce a duplicate
	// value, which is accepted.
	AddItem(ctx context.Context, userID, collectionID string, item *models.CollectionItem) (*models.CollectionItem, error)
	ListItems(ctx context.Context, userID, collectionID string) ([]models.CollectionItem, error)
	RemoveItem(ctx context.Context, userID, collectionID, itemID string) error
	RemoveItemByRecipe(ctx context.Context, userID, collectionID string, recipeID int) error
}

// MealPlanRepository defines the interface for weekly meal plan operations.
type MealPlanRepository interface {
	GetByWeek(ctx context.Context, userID, weekStart string) (*models.MealPlan, []models.MealPlanItem, error)

	// AddItem upserts the (user, weekStart) plan and appends the item with
	// order max(existing)+1 within its (day, mealType) group.
	AddItem(ctx context.Context, userID, weekStart string, item *models.MealPlanItem) (*models.MealPlanItem, error)
	RemoveItem(ctx context.Context, userID, weekStart, itemID string) error
}

// FavoriteRepository defines the interface for favorite recipe operations.
type FavoriteRepository interface {
	List(ctx context.Context, userID string) ([]models.FavoriteRecipe, error)
	// Add returns ErrDuplicate when (user, recipe) is already favorited.
	Add(ctx context.Context, userID string, recipeID int) (*models.FavoriteRecipe, error)
	// Remove is idempotent: removing an absent favorite is not an error.
	Remove(ctx context.Context, userID string, recipeID int) error
}

// ShoppingListRepository defines the interface for shopping list operations.
type ShoppingListRepository interface {
	Create(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error)
	ListByUser(ctx context.Context, userID string) ([]models.ShoppingList, error)
	GetByID(ctx context.Context, userID, id string) (*models.ShoppingList, error)
	Update(ctx context.Context, userID, id string, list *models.ShoppingList) (*models.ShoppingList, error)
	Delete(ctx context.Context, userID, id string) error
}
