package mongodb

import (
	"context"
	"errors"
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

const queryTimeout = 5 * time.Second

type collectionRepository struct {
	db *database.Database
}

// NewCollectionRepository creates a MongoDB-backed collection repository.
func NewCollectionRepository(db *database.Database) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) collections() *mongo.Collection {
	return r.db.Collection("collections")
}

func (r *collectionRepository) items() *mongo.Collection {
	return r.db.Collection("collection_items")
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	return oid, nil
}

func (r *collectionRepository) Create(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.collections().InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return c, nil
}

func (r *collectionRepository) ListByUser(ctx context.Context, userID string) ([]repository.CollectionWithCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collections().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	defer cursor.Close(ctx)

	var collections []models.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, fmt.Errorf("failed to decode collections: %w", err)
	}

	result := make([]repository.CollectionWithCount, 0, len(collections))
	for _, c := range collections {
		count, err := r.items().CountDocuments(ctx, bson.M{"collectionId": c.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to count collection items: %w", err)
		}
		result = append(result, repository.CollectionWithCount{Collection: c, ItemCount: int(count)})
	}
	return result, nil
}

func (r *collectionRepository) GetByID(ctx context.Context, userID, id string) (*models.Collection, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c models.Collection
	filter := bson.M{"_id": oid, "userId": userID}
	if err := r.collections().FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch collection: %w", err)
	}
	return &c, nil
}

func (r *collectionRepository) Update(ctx context.Context, userID, id string, fields map[string]any) (*models.Collection, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	filter := bson.M{"_id": oid, "userId": userID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Collection
	err = r.collections().FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}
	return &updated, nil
}

func (r *collectionRepository) Delete(ctx context.Context, userID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collections().DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	if _, err := r.items().DeleteMany(ctx, bson.M{"collectionId": oid}); err != nil {
		return fmt.Errorf("failed to delete collection items: %w", err)
	}
	return nil
}

// AddItem computes the next order value as max(existing)+1. The read and
// the insert are not serialized, so concurrent adds can assign the same
// order; that is accepted for an advisory display counter.
func (r *collectionRepository) AddItem(ctx context.Context, userID, collectionID string, item *models.CollectionItem) (*models.CollectionItem, error) {
	parent, err := r.GetByID(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	maxOrder := 0
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	var last models.CollectionItem
	err = r.items().FindOne(ctx, bson.M{"collectionId": parent.ID}, opts).Decode(&last)
	if err == nil {
		maxOrder = last.Order
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to read max item order: %w", err)
	}

	item.ID = primitive.NewObjectID()
	item.CollectionID = parent.ID
	item.Order = maxOrder + 1
	item.CreatedAt = time.Now().UTC()

	if _, err := r.items().InsertOne(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add collection item: %w", err)
	}
	return item, nil
}

func (r *collectionRepository) ListItems(ctx context.Context, userID, collectionID string) ([]models.CollectionItem, error) {
	parent, err := r.GetByID(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.items().Find(ctx, bson.M{"collectionId": parent.ID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.CollectionItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection items: %w", err)
	}
	if items == nil {
		items = make([]models.CollectionItem, 0)
	}
	return items, nil
}

func (r *collectionRepository) RemoveItem(ctx context.Context, userID, collectionID, itemID string) error {
	parent, err := r.GetByID(ctx, userID, collectionID)
	if err != nil {
		return err
	}
	oid, err := objectID(itemID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.items().DeleteOne(ctx, bson.M{"_id": oid, "collectionId": parent.ID})
	if err != nil {
		return fmt.Errorf("failed to remove collection item: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *collectionRepository) RemoveItemByRecipe(ctx context.Context, userID, collectionID string, recipeID int) error {
	parent, err := r.GetByID(ctx, userID, collectionID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.items().DeleteOne(ctx, bson.M{"collectionId": parent.ID, "recipeId": recipeID})
	if err != nil {
		return fmt.Errorf("failed to remove collection item: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
