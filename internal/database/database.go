package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database wraps the shared MongoDB client and the application database name.
type Database struct {
	Client *mongo.Client
	Name   string
}

// Connect establishes the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Database{Client: client, Name: dbName}, nil
}

// Collection returns a handle to the named collection in the app database.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.Client.Database(d.Name).Collection(name)
}

// EnsureIndexes creates the indexes the application relies on. The unique
// (userId, recipeId) index on favorites is what turns a duplicate add into
// a driver duplicate-key error instead of a second document.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	favorites := d.Collection("favorite_recipes")
	_, err := favorites.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "recipeId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create favorites index: %w", err)
	}

	mealPlans := d.Collection("meal_plans")
	_, err = mealPlans.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weekStart", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create meal plan index: %w", err)
	}

	return nil
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
