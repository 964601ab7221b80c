package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"plateful/backend/internal/database"
	"plateful/backend/internal/models"
	"plateful/backend/internal/repository"
)

type shoppingListRepository struct {
	db *database.Database
}

// NewShoppingListRepository creates a MongoDB-backed shopping list repository.
func NewShoppingListRepository(db *database.Database) repository.ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

func (r *shoppingListRepository) lists() *mongo.Collection {
	return r.db.Collection("shopping_lists")
}

// assignItemIDs gives every item without an id a fresh one, so clients can
// address individual lines on subsequent updates.
func assignItemIDs(items []models.ShoppingListItem) []models.ShoppingListItem {
	if items == nil {
		return make([]models.ShoppingListItem, 0)
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
	return items
}

func (r *shoppingListRepository) Create(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	list.ID = primitive.NewObjectID()
	list.Items = assignItemIDs(list.Items)
	list.CreatedAt = now
	list.UpdatedAt = now

	if _, err := r.lists().InsertOne(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return list, nil
}

func (r *shoppingListRepository) ListByUser(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.lists().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shopping lists: %w", err)
	}
	defer cursor.Close(ctx)

	var lists []models.ShoppingList
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode shopping lists: %w", err)
	}
	if lists == nil {
		lists = make([]models.ShoppingList, 0)
	}
	return lists, nil
}

func (r *shoppingListRepository) GetByID(ctx context.Context, userID, id string) (*models.ShoppingList, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var list models.ShoppingList
	filter := bson.M{"_id": oid, "userId": userID}
	if err := r.lists().FindOne(ctx, filter).Decode(&list); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch shopping list: %w", err)
	}
	return &list, nil
}

func (r *shoppingListRepository) Update(ctx context.Context, userID, id string, list *models.ShoppingList) (*models.ShoppingList, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":      list.Name,
		"items":     assignItemIDs(list.Items),
		"completed": list.Completed,
		"updatedAt": time.Now().UTC(),
	}}
	filter := bson.M{"_id": oid, "userId": userID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ShoppingList
	if err := r.lists().FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update shopping list: %w", err)
	}
	return &updated, nil
}

func (r *shoppingListRepository) Delete(ctx context.Context, userID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.lists().DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
