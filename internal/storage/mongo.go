// Package storage owns the process-wide MongoDB handle: connected once at
// startup, shared by every repository, torn down at shutdown.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	AccountsCollection = "accounts"
	ListingsCollection = "listings"
	MessagesCollection = "messages"
)

// Connect opens the client and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the secondary and uniqueness indexes the
// repositories rely on. Username/email uniqueness lives in the store so
// concurrent registrations cannot race past an application-level check;
// duplicate inserts surface as duplicate-key errors.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AccountsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdat", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("accounts indexes: %w", err)
	}

	_, err = db.Collection(ListingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdat", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdat", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "createdat", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("listings indexes: %w", err)
	}

	_, err = db.Collection(MessagesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversationid", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "listingid", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "recipientid", Value: 1}, {Key: "isread", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("messages indexes: %w", err)
	}
	return nil
}
