package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review data model. Rating is a pointer so that an absent rating fails
// validation while 0 is accepted.
type Review struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username" validate:"required"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Body        string             `json:"body" bson:"body" validate:"required"`
	Rating      *int               `json:"rating" bson:"rating" validate:"required,min=0,max=5"`
	CreatedAt   string             `json:"created_at" bson:"created_at"`
	CreatedAtTS time.Time          `json:"-" bson:"created_at_ts"`
}

func (r *Review) Prepare(now time.Time) {
	r.ID = primitive.NilObjectID
	r.CreatedAt, r.CreatedAtTS = Stamp(now)
}

// NoUpdate is the update payload of resources without an update operation.
type NoUpdate struct{}
