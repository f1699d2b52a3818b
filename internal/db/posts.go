package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jonathan/social-amplifier/internal/types"
)

// InsertPost stores one assembled record and returns the assigned id in
// hex form. The record is validated first; a partial record is a
// programming error upstream and must never reach the store. Inserts
// are never retried.
func (db *DB) InsertPost(ctx context.Context, record *types.PostRecord) (string, error) {
	if record == nil {
		return "", &PersistenceError{Op: "insert", Message: "record is nil"}
	}
	if err := record.Validate(); err != nil {
		return "", &PersistenceError{Op: "insert", Message: "incomplete record", Cause: err}
	}

	result, err := db.posts().InsertOne(ctx, record)
	if err != nil {
		return "", &PersistenceError{Op: "insert", Message: "failed to insert post", Cause: err}
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", &PersistenceError{Op: "insert", Message: "unexpected inserted id type"}
	}
	return id.Hex(), nil
}

// ListPosts returns every stored record with identifier and timestamp
// normalized to transport-safe strings. Full-collection scan; no
// pagination in current scope.
func (db *DB) ListPosts(ctx context.Context) ([]types.PostView, error) {
	cursor, err := db.posts().Find(ctx, bson.D{})
	if err != nil {
		return nil, &PersistenceError{Op: "list", Message: "failed to query posts", Cause: err}
	}
	defer func() { _ = cursor.Close(ctx) }()

	views := []types.PostView{}
	for cursor.Next(ctx) {
		var record types.PostRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, &PersistenceError{Op: "list", Message: "failed to decode post", Cause: err}
		}
		views = append(views, record.View())
	}
	if err := cursor.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", Message: "cursor failed", Cause: err}
	}

	return views, nil
}
