// Package store is the document store boundary used by the resource
// handlers. Every operation touches a single document in a single call.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoDocument is returned by FindOne and FindOneAndSet when the filter
// matches nothing.
var ErrNoDocument = errors.New("no document matched")

// FindOptions controls ordering and size of a Find call. An empty SortField
// keeps the natural (insertion) order.
type FindOptions struct {
	SortField  string
	Descending bool
	Limit      int64
}

// Collection is the subset of document store operations the service needs.
type Collection interface {
	InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error)
	// Find decodes every matching document into out, which must be a
	// pointer to a slice.
	Find(ctx context.Context, filter bson.M, opts FindOptions, out interface{}) error
	FindOne(ctx context.Context, filter bson.M, out interface{}) error
	// FindOneAndSet applies set to the first matching document and decodes
	// the post-update document into out. It never inserts.
	FindOneAndSet(ctx context.Context, filter bson.M, set bson.M, out interface{}) error
	DeleteOne(ctx context.Context, filter bson.M) (int64, error)
}

// Database hands out collections by name and owns the connection lifecycle.
type Database interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
