package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article data model. Username names the author; it is not checked
// against the users collection.
type Article struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username" validate:"required"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Topic       string             `json:"topic" bson:"topic" validate:"required"`
	Body        string             `json:"body" bson:"body" validate:"required"`
	CreatedAt   string             `json:"created_at" bson:"created_at"`
	CreatedAtTS time.Time          `json:"-" bson:"created_at_ts"`
}

func (a *Article) Prepare(now time.Time) {
	a.ID = primitive.NilObjectID
	a.CreatedAt, a.CreatedAtTS = Stamp(now)
}

type ArticleUpdate struct {
	Title *string `json:"title" bson:"title" validate:"omitnil,min=1"`
	Topic *string `json:"topic" bson:"topic" validate:"omitnil,min=1"`
	Body  *string `json:"body" bson:"body" validate:"omitnil,min=1"`
}
