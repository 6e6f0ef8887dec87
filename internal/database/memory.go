// internal/database/memory.go
package database

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/retailx/retailx-backend/internal/query"
)

// MemoryCollection is an in-process Collection evaluating filters with
// query.Filter.Match. It backs tests and STORE_DRIVER=memory.
type MemoryCollection struct {
	mu     sync.RWMutex
	docs   []bson.M
	unique []string
}

func NewMemoryCollection(uniqueFields ...string) *MemoryCollection {
	return &MemoryCollection{unique: uniqueFields}
}

func (c *MemoryCollection) Find(ctx context.Context, filter query.Filter, opts FindOptions) ([]bson.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter = filterOrAll(filter)

	c.mu.RLock()
	matched := []bson.M{}
	for _, doc := range c.docs {
		if filter.Match(doc) {
			matched = append(matched, copyDoc(doc))
		}
	}
	c.mu.RUnlock()

	if opts.SortBy != "" {
		sortDocs(matched, opts.SortBy, opts.SortDesc)
	}

	skip := max(opts.Skip, 0)
	if skip >= int64(len(matched)) {
		return []bson.M{}, nil
	}
	matched = matched[skip:]
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func sortDocs(docs []bson.M, field string, desc bool) {
	if desc {
		for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
			docs[i], docs[j] = docs[j], docs[i]
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		cmp := query.Compare(docs[i], docs[j], field)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func (c *MemoryCollection) FindOne(ctx context.Context, filter query.Filter) (bson.M, error) {
	docs, err := c.Find(ctx, filter, FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	return docs[0], nil
}

func (c *MemoryCollection) InsertOne(ctx context.Context, v interface{}) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	doc, err := toDocument(v)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		doc["_id"] = id
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, field := range append([]string{"_id"}, c.unique...) {
		value, present := doc[field]
		if !present {
			continue
		}
		for _, existing := range c.docs {
			if (query.Eq{Field: field, Value: value}).Match(existing) {
				return primitive.NilObjectID, ErrDuplicateKey
			}
		}
	}

	c.docs = append(c.docs, doc)
	return id, nil
}

func (c *MemoryCollection) UpdateOne(ctx context.Context, filter query.Filter, set bson.M) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	filter = filterOrAll(filter)

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if !filter.Match(doc) {
			continue
		}
		updated := copyDoc(doc)
		for k, v := range set {
			updated[k] = v
		}
		c.docs[i] = updated
		return 1, nil
	}
	return 0, nil
}

func (c *MemoryCollection) DeleteOne(ctx context.Context, filter query.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	filter = filterOrAll(filter)

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if filter.Match(doc) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *MemoryCollection) Count(ctx context.Context, filter query.Filter) (int64, error) {
	docs, err := c.Find(ctx, filter, FindOptions{})
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
