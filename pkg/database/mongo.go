// Package database owns the MongoDB client for the storefront.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/maison/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect dials MongoDB and verifies the connection with a ping.
// Call once at application startup.
func Connect(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(dialCtx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(dialCtx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())
	return nil
}

// DB returns the application database handle. Connect must have succeeded.
func DB() *mongo.Database { return db }

// Collection returns a handle to the named collection, or nil before
// Connect has succeeded.
func Collection(name string) *mongo.Collection {
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// Ping verifies the connection is still live (used by /healthz).
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("database: not connected")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(pingCtx, nil)
}

// CollectionNames lists up to limit collection names (used by /healthz,
// mirrors the upstream diagnostic endpoint).
func CollectionNames(ctx context.Context, limit int) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("database: not connected")
	}
	names, err := db.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("database: list collections: %w", err)
	}
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// Disconnect closes the client. Call at shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(closeCtx)
}
