// internal/database/connection.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/retailx/retailx-backend/internal/config"
)

const (
	ProductsCollection  = "products"
	UsersCollection     = "users"
	SellersCollection   = "sellers"
	AdminsCollection    = "admins"
	AuditLogsCollection = "audit_logs"
)

// Store groups the collections the service reads and writes.
type Store struct {
	Products  Collection
	Users     Collection
	Sellers   Collection
	Admins    Collection
	AuditLogs Collection

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) {
	if s.close == nil {
		return
	}
	if err := s.close(ctx); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
		return
	}
	logrus.Info("Database connection closed successfully")
}

// NewMemoryStore returns a store held entirely in process memory with the
// same unique email constraint the MongoDB indexes enforce.
func NewMemoryStore() *Store {
	return &Store{
		Products:  NewMemoryCollection(),
		Users:     NewMemoryCollection("email"),
		Sellers:   NewMemoryCollection("email"),
		Admins:    NewMemoryCollection("email"),
		AuditLogs: NewMemoryCollection(),
	}
}

// Initialize opens the store selected by cfg.Driver.
func Initialize(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	if cfg.Driver == "memory" {
		logrus.Warn("Using in-memory document store; data is lost on restart")
		return NewMemoryStore(), nil
	}

	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db, cfg.Timeout()); err != nil {
		logrus.WithError(err).Warn("Failed to create indexes")
	}

	timeout := cfg.Timeout()
	store := &Store{
		Products:  NewMongoCollection(db.Collection(ProductsCollection), timeout),
		Users:     NewMongoCollection(db.Collection(UsersCollection), timeout),
		Sellers:   NewMongoCollection(db.Collection(SellersCollection), timeout),
		Admins:    NewMongoCollection(db.Collection(AdminsCollection), timeout),
		AuditLogs: NewMongoCollection(db.Collection(AuditLogsCollection), timeout),
		ping: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return client.Ping(ctx, nil)
		},
		close: client.Disconnect,
	}
	return store, nil
}

func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout()).
		SetServerSelectionTimeout(cfg.Timeout())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		if derr := client.Disconnect(context.WithoutCancel(ctx)); derr != nil {
			logrus.WithError(derr).Warn("Failed to disconnect after ping failure")
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("database", cfg.Database).Info("Database connection established successfully")
	return client, nil
}

// EnsureIndexes creates the unique account email indexes and the product
// lookup indexes. Individual failures are logged and skipped.
func EnsureIndexes(ctx context.Context, db *mongo.Database, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		UsersCollection:   {uniqueIndex("email")},
		SellersCollection: {uniqueIndex("email")},
		AdminsCollection:  {uniqueIndex("email")},
		ProductsCollection: {
			{Keys: bson.D{{Key: "seller_email", Value: 1}}},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}}},
		},
		AuditLogsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	var failed int
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			logrus.WithError(err).WithField("collection", name).Warn("Failed to create index")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d collections without indexes", failed)
	}
	return nil
}

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}
