package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/SergeyParamoshkin/skillshare/internal/objectid"
	"github.com/SergeyParamoshkin/skillshare/internal/store"
)

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for server generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Service implements create, list, get, update and delete for one
// resource type. It holds no mutable state; every operation is a single
// store call apart from the re-fetch after insert.
type Service[T any, U any] struct {
	schema   Schema[T, U]
	coll     store.Collection
	validate *validator.Validate
	now      func() time.Time
}

func NewService[T any, U any](db store.Database, schema Schema[T, U], opts ...Option) *Service[T, U] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Service[T, U]{
		schema:   schema,
		coll:     db.Collection(schema.Collection),
		validate: newValidator(),
		now:      o.now,
	}
}

func (s *Service[T, U]) Schema() Schema[T, U] {
	return s.schema
}

// Create validates doc, inserts it and returns the stored document as
// re-read by its new identifier.
func (s *Service[T, U]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := s.check(doc); err != nil {
		return nil, err
	}

	if s.schema.Prepare != nil {
		s.schema.Prepare(doc, s.now())
	}

	id, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", s.schema.Name, err)
	}

	return s.findOne(ctx, bson.M{"_id": id}, objectid.Encode(id))
}

// List returns up to MaxListSize documents. sortBy is "ASC" or "DESC"
// (case insensitive, DESC when empty) for schemas with a SortField.
func (s *Service[T, U]) List(ctx context.Context, sortBy string) ([]T, error) {
	opts := store.FindOptions{Limit: MaxListSize}
	if s.schema.SortField != "" {
		desc, err := ParseSortDirection(sortBy)
		if err != nil {
			return nil, err
		}
		opts.SortField = s.schema.SortField
		opts.Descending = desc
	}

	docs := make([]T, 0)
	if err := s.coll.Find(ctx, nil, opts, &docs); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.schema.Collection, err)
	}

	return docs, nil
}

func (s *Service[T, U]) Get(ctx context.Context, rawID string) (*T, error) {
	id, err := objectid.Decode(rawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.schema.Name, err)
	}

	return s.findOne(ctx, bson.M{"_id": id}, rawID)
}

// GetByKey looks a document up by exact match on the schema's secondary key.
func (s *Service[T, U]) GetByKey(ctx context.Context, value string) (*T, error) {
	if s.schema.SecondaryKey == "" {
		return nil, fmt.Errorf("%s has no secondary key: %w", s.schema.Name, ErrInvalidParameter)
	}

	return s.findOne(ctx, bson.M{s.schema.SecondaryKey: value}, value)
}

func (s *Service[T, U]) Update(ctx context.Context, rawID string, upd *U) (*T, error) {
	id, err := objectid.Decode(rawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.schema.Name, err)
	}

	return s.update(ctx, bson.M{"_id": id}, rawID, upd)
}

// UpdateByKey updates by the secondary key, or by identifier when the value
// is a well formed identifier.
func (s *Service[T, U]) UpdateByKey(ctx context.Context, value string, upd *U) (*T, error) {
	if s.schema.SecondaryKey == "" || objectid.IsValid(value) {
		return s.Update(ctx, value, upd)
	}

	return s.update(ctx, bson.M{s.schema.SecondaryKey: value}, value, upd)
}

func (s *Service[T, U]) Delete(ctx context.Context, rawID string) error {
	id, err := objectid.Decode(rawID)
	if err != nil {
		return fmt.Errorf("%s: %w", s.schema.Name, err)
	}

	n, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", s.schema.Name, rawID, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s %w", s.schema.Name, rawID, ErrNotFound)
	}

	return nil
}

func (s *Service[T, U]) update(ctx context.Context, filter bson.M, key string, upd *U) (*T, error) {
	if !s.schema.Updatable {
		return nil, fmt.Errorf("%s: %w", s.schema.Name, ErrNotUpdatable)
	}
	if err := s.check(upd); err != nil {
		return nil, err
	}

	patch, err := BuildPatch(upd)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", s.schema.Name, key, err)
	}

	var doc T
	err = s.coll.FindOneAndSet(ctx, filter, patch, &doc)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%s %s %w", s.schema.Name, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", s.schema.Name, key, err)
	}

	return &doc, nil
}

func (s *Service[T, U]) findOne(ctx context.Context, filter bson.M, key string) (*T, error) {
	var doc T
	err := s.coll.FindOne(ctx, filter, &doc)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%s %s %w", s.schema.Name, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", s.schema.Name, key, err)
	}

	return &doc, nil
}

func (s *Service[T, U]) check(v interface{}) error {
	err := s.validate.Struct(v)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return newValidationError(s.schema.Name, verrs)
	}

	return err
}

// ParseSortDirection reports whether sortBy asks for descending order.
func ParseSortDirection(sortBy string) (bool, error) {
	switch strings.ToUpper(sortBy) {
	case "", "DESC":
		return true, nil
	case "ASC":
		return false, nil
	default:
		return false, fmt.Errorf("%w: sortby must be ASC or DESC, got %q", ErrInvalidParameter, sortBy)
	}
}
