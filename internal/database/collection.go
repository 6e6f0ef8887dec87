// internal/database/collection.go
package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/retailx/retailx-backend/internal/query"
)

// ErrNoDocuments is returned by FindOne when nothing matches.
var ErrNoDocuments = errors.New("no documents in result")

// ErrDuplicateKey is returned when an insert violates a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// FindOptions pages a Find. SortBy names a single field; ties keep
// insertion order, reversed when SortDesc is set.
type FindOptions struct {
	Limit    int64
	Skip     int64
	SortBy   string
	SortDesc bool
}

// Collection is the document store surface the services depend on. Every
// update or delete targets a single document.
type Collection interface {
	Find(ctx context.Context, filter query.Filter, opts FindOptions) ([]bson.M, error)
	FindOne(ctx context.Context, filter query.Filter) (bson.M, error)
	InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter query.Filter, set bson.M) (matched int64, err error)
	DeleteOne(ctx context.Context, filter query.Filter) (deleted int64, err error)
	Count(ctx context.Context, filter query.Filter) (int64, error)
}

// Decode converts a raw document into a typed model using its bson tags.
func Decode(doc bson.M, v interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}

// toDocument converts a typed model into a raw document.
func toDocument(v interface{}) (bson.M, error) {
	if m, ok := v.(bson.M); ok {
		out := make(bson.M, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out bson.M
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func filterOrAll(f query.Filter) query.Filter {
	if f == nil {
		return query.And{}
	}
	return f
}
