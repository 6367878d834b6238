// Package memstore is an in-process store.Database. Documents go through a
// bson round trip on every write and read, so decoding behaves the same as
// against MongoDB.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SergeyParamoshkin/skillshare/internal/store"
)

type Database struct {
	mu    sync.Mutex
	colls map[string]*Collection
}

func New() *Database {
	return &Database{colls: make(map[string]*Collection)}
}

func (d *Database) Collection(name string) store.Collection {
	return d.Get(name)
}

// Get returns the concrete collection, creating it on first use.
func (d *Database) Get(name string) *Collection {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.colls[name]
	if !ok {
		c = &Collection{}
		d.colls[name] = c
	}

	return c
}

func (d *Database) Ping(context.Context) error { return nil }

func (d *Database) Close(context.Context) error { return nil }

// Collection keeps documents in insertion order.
type Collection struct {
	mu    sync.Mutex
	docs  []bson.M
	calls int
}

// Calls reports how many operations reached the collection.
func (c *Collection) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls
}

func (c *Collection) InsertOne(_ context.Context, doc interface{}) (primitive.ObjectID, error) {
	m, err := toM(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if _, ok := m["_id"]; !ok {
		m["_id"] = primitive.NewObjectID()
	}
	id, ok := m["_id"].(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("memstore: _id must be an ObjectID, got %T", m["_id"])
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	if c.indexOf(bson.M{"_id": id}) >= 0 {
		return primitive.NilObjectID, fmt.Errorf("memstore: duplicate key %s", id.Hex())
	}
	c.docs = append(c.docs, m)

	return id, nil
}

func (c *Collection) Find(_ context.Context, filter bson.M, opts store.FindOptions, out interface{}) error {
	sliceVal := reflect.ValueOf(out)
	if sliceVal.Kind() != reflect.Ptr || sliceVal.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("memstore: out must be a pointer to a slice, got %T", out)
	}

	c.mu.Lock()
	c.calls++
	var found []bson.M
	for _, doc := range c.docs {
		if matches(doc, filter) {
			found = append(found, doc)
		}
	}
	raws := make([][]byte, 0, len(found))
	if opts.SortField != "" {
		sort.SliceStable(found, func(i, j int) bool {
			if opts.Descending {
				return less(found[j][opts.SortField], found[i][opts.SortField])
			}
			return less(found[i][opts.SortField], found[j][opts.SortField])
		})
	}
	if opts.Limit > 0 && int64(len(found)) > opts.Limit {
		found = found[:opts.Limit]
	}
	for _, doc := range found {
		raw, err := bson.Marshal(doc)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		raws = append(raws, raw)
	}
	c.mu.Unlock()

	elemType := sliceVal.Elem().Type().Elem()
	result := reflect.MakeSlice(sliceVal.Elem().Type(), 0, len(raws))
	for _, raw := range raws {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	sliceVal.Elem().Set(result)

	return nil
}

func (c *Collection) FindOne(_ context.Context, filter bson.M, out interface{}) error {
	c.mu.Lock()
	c.calls++
	i := c.indexOf(filter)
	if i < 0 {
		c.mu.Unlock()
		return store.ErrNoDocument
	}
	raw, err := bson.Marshal(c.docs[i])
	c.mu.Unlock()
	if err != nil {
		return err
	}

	return bson.Unmarshal(raw, out)
}

func (c *Collection) FindOneAndSet(_ context.Context, filter bson.M, set bson.M, out interface{}) error {
	patch, err := toM(set)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.calls++
	i := c.indexOf(filter)
	if i < 0 {
		c.mu.Unlock()
		return store.ErrNoDocument
	}
	for k, v := range patch {
		c.docs[i][k] = v
	}
	raw, err := bson.Marshal(c.docs[i])
	c.mu.Unlock()
	if err != nil {
		return err
	}

	return bson.Unmarshal(raw, out)
}

func (c *Collection) DeleteOne(_ context.Context, filter bson.M) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	i := c.indexOf(filter)
	if i < 0 {
		return 0, nil
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)

	return 1, nil
}

// indexOf must be called with c.mu held.
func (c *Collection) indexOf(filter bson.M) int {
	for i, doc := range c.docs {
		if matches(doc, filter) {
			return i
		}
	}

	return -1
}

// matches supports top-level equality filters only.
func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}

	return true
}

func less(a, b interface{}) bool {
	switch av := a.(type) {
	case primitive.DateTime:
		bv, _ := b.(primitive.DateTime)
		return av < bv
	case int32:
		bv, _ := b.(int32)
		return av < bv
	case int64:
		bv, _ := b.(int64)
		return av < bv
	case float64:
		bv, _ := b.(float64)
		return av < bv
	case string:
		bv, _ := b.(string)
		return av < bv
	default:
		// missing fields sort first, like in MongoDB
		return a == nil && b != nil
	}
}

func toM(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	return m, nil
}
