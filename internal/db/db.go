// Package db provides MongoDB persistence for assembled post records.
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default database and collection names.
const (
	DefaultDatabase   = "content_creation_db"
	DefaultCollection = "posts"
)

// DB wraps a MongoDB client scoped to the posts collection.
type DB struct {
	client     *mongo.Client
	database   string
	collection string
}

// Connect establishes and verifies a connection to MongoDB. Empty
// database or collection names fall back to the defaults.
func Connect(ctx context.Context, uri, database, collection string) (*DB, error) {
	if uri == "" {
		return nil, &PersistenceError{Op: "connect", Message: "MongoDB URI is required"}
	}
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Message: "failed to connect", Cause: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, &PersistenceError{Op: "connect", Message: "failed to ping", Cause: err}
	}

	return &DB{client: client, database: database, collection: collection}, nil
}

// Close disconnects from MongoDB.
func (db *DB) Close(ctx context.Context) error {
	if db.client != nil {
		return db.client.Disconnect(ctx)
	}
	return nil
}

// posts returns the configured collection handle.
func (db *DB) posts() *mongo.Collection {
	return db.client.Database(db.database).Collection(db.collection)
}
