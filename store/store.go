package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by FindByID when no document has the given id.
var ErrNotFound = errors.New("document not found")

// Filter selects documents. Equals are exact field matches, Contains are
// case-insensitive substring matches on string fields.
type Filter struct {
	Equals   map[string]any
	Contains map[string]string
}

// Query is a filtered, sorted, paginated read. Results are sorted by SortBy
// descending, then by _id descending so equal sort keys keep a stable order.
// A zero Limit means no limit.
type Query struct {
	Filter Filter
	SortBy string
	Skip   int64
	Limit  int64
}

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// Collection is the subset of document-store operations the services need.
type Collection interface {
	InsertOne(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	Find(ctx context.Context, q Query) ([]bson.M, error)
	Count(ctx context.Context, f Filter) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Database hands out named collections sharing one connection.
type Database interface {
	Collection(name string) Collection
}
