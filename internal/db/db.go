package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TodosCollection  = "todos"
	TagsCollection   = "tags"
	FilesCollection  = "files"
	ImagesCollection = "images"
)

// Init connects to MongoDB, verifies the connection and ensures the text
// index that backs todo search.
func Init(url, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := client.Database(database)

	// Search matches on title and description via this index.
	_, err = d.Collection(TodosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text index: %w", err)
	}

	slog.Info("database connected", "database", database)

	return d, nil
}

// Close disconnects the underlying client.
func Close(database *mongo.Database) error {
	if database == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return database.Client().Disconnect(ctx)
}
