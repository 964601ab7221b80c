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

type mealPlanRepository struct {
	db *database.Database
}

// NewMealPlanRepository creates a MongoDB-backed meal plan repository.
func NewMealPlanRepository(db *database.Database) repository.MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) plans() *mongo.Collection {
	return r.db.Collection("meal_plans")
}

func (r *mealPlanRepository) items() *mongo.Collection {
	return r.db.Collection("meal_plan_items")
}

func (r *mealPlanRepository) GetByWeek(ctx context.Context, userID, weekStart string) (*models.MealPlan, []models.MealPlanItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var plan models.MealPlan
	err := r.plans().FindOne(ctx, bson.M{"userId": userID, "weekStart": weekStart}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to fetch meal plan: %w", err)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "dayOfWeek", Value: 1},
		{Key: "mealType", Value: 1},
		{Key: "order", Value: 1},
	})
	cursor, err := r.items().Find(ctx, bson.M{"mealPlanId": plan.ID}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch meal plan items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MealPlanItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, nil, fmt.Errorf("failed to decode meal plan items: %w", err)
	}
	if items == nil {
		items = make([]models.MealPlanItem, 0)
	}
	return &plan, items, nil
}

// AddItem upserts the (user, weekStart) plan document and appends the item.
// Order is max(existing)+1 within the (plan, day, mealType) group, computed
// without serialization; a concurrent add can duplicate an order value.
func (r *mealPlanRepository) AddItem(ctx context.Context, userID, weekStart string, item *models.MealPlanItem) (*models.MealPlanItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"userId": userID, "weekStart": weekStart}
	update := bson.M{
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"weekStart": weekStart,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var plan models.MealPlan
	if err := r.plans().FindOneAndUpdate(ctx, filter, update, opts).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to upsert meal plan: %w", err)
	}

	maxOrder := 0
	itemFilter := bson.M{
		"mealPlanId": plan.ID,
		"dayOfWeek":  item.DayOfWeek,
		"mealType":   item.MealType,
	}
	findOpts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	var last models.MealPlanItem
	err := r.items().FindOne(ctx, itemFilter, findOpts).Decode(&last)
	if err == nil {
		maxOrder = last.Order
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to read max item order: %w", err)
	}

	item.ID = primitive.NewObjectID()
	item.MealPlanID = plan.ID
	item.Order = maxOrder + 1
	item.CreatedAt = now

	if _, err := r.items().InsertOne(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add meal plan item: %w", err)
	}
	return item, nil
}

func (r *mealPlanRepository) RemoveItem(ctx context.Context, userID, weekStart, itemID string) error {
	oid, err := objectID(itemID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var plan models.MealPlan
	err = r.plans().FindOne(ctx, bson.M{"userId": userID, "weekStart": weekStart}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to fetch meal plan: %w", err)
	}

	result, err := r.items().DeleteOne(ctx, bson.M{"_id": oid, "mealPlanId": plan.ID})
	if err != nil {
		return fmt.Errorf("failed to remove meal plan item: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
