// internal/database/mongo.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/retailx/retailx-backend/internal/query"
)

// MongoCollection adapts a driver collection to Collection. Every call is
// bounded by timeout on top of the caller's context.
type MongoCollection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoCollection(coll *mongo.Collection, timeout time.Duration) *MongoCollection {
	return &MongoCollection{coll: coll, timeout: timeout}
}

func (c *MongoCollection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *MongoCollection) Find(ctx context.Context, filter query.Filter, opts FindOptions) ([]bson.M, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	findOptions := options.Find()
	if opts.Limit > 0 {
		findOptions.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(opts.Skip)
	}
	if opts.SortBy != "" {
		direction := 1
		if opts.SortDesc {
			direction = -1
		}
		findOptions.SetSort(bson.D{{Key: opts.SortBy, Value: direction}})
	}

	cursor, err := c.coll.Find(ctx, filterOrAll(filter).BSON(), findOptions)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c *MongoCollection) FindOne(ctx context.Context, filter query.Filter) (bson.M, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var doc bson.M
	err := c.coll.FindOne(ctx, filterOrAll(filter).BSON()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return doc, nil
}

func (c *MongoCollection) InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicateKey
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", c.coll.Name(), result.InsertedID)
	}
	return id, nil
}

func (c *MongoCollection) UpdateOne(ctx context.Context, filter query.Filter, set bson.M) (int64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.coll.UpdateOne(ctx, filterOrAll(filter).BSON(), bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("update in %s: %w", c.coll.Name(), err)
	}
	return result.MatchedCount, nil
}

func (c *MongoCollection) DeleteOne(ctx context.Context, filter query.Filter) (int64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.coll.DeleteOne(ctx, filterOrAll(filter).BSON())
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return result.DeletedCount, nil
}

func (c *MongoCollection) Count(ctx context.Context, filter query.Filter) (int64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	n, err := c.coll.CountDocuments(ctx, filterOrAll(filter).BSON())
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}
