package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"plateful/backend/internal/database"
	"plateful/backend/internal/models"
	"plateful/backend/internal/repository"
)

type favoriteRepository struct {
	db *database.Database
}

// NewFavoriteRepository creates a MongoDB-backed favorite repository.
func NewFavoriteRepository(db *database.Database) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) favorites() *mongo.Collection {
	return r.db.Collection("favorite_recipes")
}

func (r *favoriteRepository) List(ctx context.Context, userID string) ([]models.FavoriteRecipe, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.favorites().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}
	defer cursor.Close(ctx)

	var favorites []models.FavoriteRecipe
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	if favorites == nil {
		favorites = make([]models.FavoriteRecipe, 0)
	}
	return favorites, nil
}

// Add relies on the unique (userId, recipeId) index: a duplicate insert
// surfaces as a driver duplicate-key error and is reported as ErrDuplicate.
func (r *favoriteRepository) Add(ctx context.Context, userID string, recipeID int) (*models.FavoriteRecipe, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	favorite := &models.FavoriteRecipe{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.favorites().InsertOne(ctx, favorite); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return favorite, nil
}

// Remove deletes the favorite if present. Removing an absent favorite is
// not an error, so the delete endpoint stays idempotent.
func (r *favoriteRepository) Remove(ctx context.Context, userID string, recipeID int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.favorites().DeleteOne(ctx, bson.M{"userId": userID, "recipeId": recipeID})
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
