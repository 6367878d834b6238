package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultImageURL is stored for users created without an image.
const DefaultImageURL = "https://placehold.co/400x400?text=skillshare"

// User data model.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username" validate:"required"`
	Skills    []string           `json:"skills" bson:"skills"`
	Interests []string           `json:"interests" bson:"interests"`
	Bio       string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	ImageURL  string             `json:"image_url" bson:"image_url"`
	Token     string             `json:"token,omitempty" bson:"token,omitempty"`
}

// Prepare fills defaults before insert.
func (u *User) Prepare(time.Time) {
	u.ID = primitive.NilObjectID
	if u.Skills == nil {
		u.Skills = []string{}
	}
	if u.Interests == nil {
		u.Interests = []string{}
	}
	if u.ImageURL == "" {
		u.ImageURL = DefaultImageURL
	}
}

// UserUpdate lists the only fields a user update may replace. Absent or
// null fields are left untouched.
type UserUpdate struct {
	Skills    []string `json:"skills" bson:"skills"`
	Interests []string `json:"interests" bson:"interests"`
	Bio       *string  `json:"bio" bson:"bio"`
	ImageURL  *string  `json:"image_url" bson:"image_url"`
}
