package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is a user-curated group of recipes.
type Collection struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CollectionItem is a recipe pinned into a collection. Order is an advisory
// display counter assigned as max(existing)+1; it is never renumbered.
type CollectionItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CollectionID primitive.ObjectID `bson:"collectionId" json:"collectionId"`
	RecipeID     int                `bson:"recipeId" json:"recipeId"`
	RecipeTitle  string             `bson:"recipeTitle" json:"recipeTitle"`
	RecipeImage  string             `bson:"recipeImage,omitempty" json:"recipeImage,omitempty"`
	Order        int                `bson:"order" json:"order"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// MealPlan is one user's plan for a single week, unique per (user, weekStart).
type MealPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	WeekStart string             `bson:"weekStart" json:"weekStart"` // YYYY-MM-DD
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MealPlanItem is a recipe scheduled into a slot of a week plan. Order is
// advisory within the (plan, day, mealType) group.
type MealPlanItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MealPlanID  primitive.ObjectID `bson:"mealPlanId" json:"mealPlanId"`
	RecipeID    int                `bson:"recipeId" json:"recipeId"`
	RecipeTitle string             `bson:"recipeTitle" json:"recipeTitle"`
	RecipeImage string             `bson:"recipeImage,omitempty" json:"recipeImage,omitempty"`
	DayOfWeek   int                `bson:"dayOfWeek" json:"dayOfWeek"` // 0 = Monday
	MealType    string             `bson:"mealType" json:"mealType"`
	Servings    int                `bson:"servings" json:"servings"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// FavoriteRecipe marks a Spoonacular recipe as a favorite of one user.
type FavoriteRecipe struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	RecipeID  int                `bson:"recipeId" json:"recipeId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ShoppingListItem is one line of a shopping list, stored embedded in the
// list document.
type ShoppingListItem struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Quantity  float64 `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Unit      string  `bson:"unit,omitempty" json:"unit,omitempty"`
	Category  string  `bson:"category,omitempty" json:"category,omitempty"`
	RecipeIDs []int   `bson:"recipeIds,omitempty" json:"recipeIds,omitempty"`
	Checked   bool    `bson:"checked" json:"checked"`
}

// ShoppingList is a user-owned list of grocery items.
type ShoppingList struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Items     []ShoppingListItem `bson:"items" json:"items"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
