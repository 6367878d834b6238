package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type record struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func newMock(t *testing.T) *mtest.T {
	t.Helper()

	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestMongoFindOneAndSet(t *testing.T) {
	mt := newMock(t)

	mt.Run("returns the post image", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{{Key: "_id", Value: id}, {Key: "name", Value: "after"}}},
		})
		c := &mongoCollection{coll: mt.Coll}

		var out record
		err := c.FindOneAndSet(context.Background(), bson.M{"_id": id}, bson.M{"name": "after"}, &out)
		require.NoError(mt, err)
		assert.Equal(mt, record{ID: id, Name: "after"}, out)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		assert.True(mt, started.Command.Lookup("new").Boolean(), "returns the document after the update")
		assert.False(mt, started.Command.Lookup("upsert").Boolean(), "never inserts")

		update := started.Command.Lookup("update").Document()
		assert.Equal(mt, "after", update.Lookup("$set", "name").StringValue())
	})

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		c := &mongoCollection{coll: mt.Coll}

		var out record
		err := c.FindOneAndSet(context.Background(), bson.M{"name": "ghost"}, bson.M{"name": "x"}, &out)
		assert.ErrorIs(mt, err, ErrNoDocument)
	})
}

func TestMongoFindOne(t *testing.T) {
	mt := newMock(t)

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "skillshare.docs", mtest.FirstBatch))
		c := &mongoCollection{coll: mt.Coll}

		var out record
		assert.ErrorIs(mt, c.FindOne(context.Background(), bson.M{"name": "ghost"}, &out), ErrNoDocument)
	})

	mt.Run("server error is passed through", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Name:    "InterruptedAtShutdown",
			Message: "interrupted at shutdown",
		}))
		c := &mongoCollection{coll: mt.Coll}

		var out record
		err := c.FindOne(context.Background(), bson.M{"name": "x"}, &out)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNoDocument)
	})
}

func TestMongoDeleteOne(t *testing.T) {
	mt := newMock(t)

	mt.Run("zero deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		c := &mongoCollection{coll: mt.Coll}

		n, err := c.DeleteOne(context.Background(), bson.M{"_id": primitive.NewObjectID()})
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), n)
	})

	mt.Run("one deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		c := &mongoCollection{coll: mt.Coll}

		n, err := c.DeleteOne(context.Background(), bson.M{"_id": primitive.NewObjectID()})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})
}

func TestMongoInsertOne(t *testing.T) {
	mt := newMock(t)

	mt.Run("returns the generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		c := &mongoCollection{coll: mt.Coll}

		id, err := c.InsertOne(context.Background(), record{Name: "new"})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})
}

func TestMongoFindSortAndLimit(t *testing.T) {
	mt := newMock(t)

	mt.Run("descending", func(mt *mtest.T) {
		first := bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "b"}}
		second := bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "a"}}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "skillshare.docs", mtest.FirstBatch, first, second),
			mtest.CreateCursorResponse(0, "skillshare.docs", mtest.NextBatch),
		)
		c := &mongoCollection{coll: mt.Coll}

		var out []record
		err := c.Find(context.Background(), nil, FindOptions{SortField: "name", Descending: true, Limit: 1000}, &out)
		require.NoError(mt, err)
		require.Len(mt, out, 2)
		assert.Equal(mt, "b", out[0].Name)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, int32(-1), started.Command.Lookup("sort", "name").Int32())
		assert.Equal(mt, int64(1000), started.Command.Lookup("limit").Int64())
	})
}
