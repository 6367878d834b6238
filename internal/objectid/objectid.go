package objectid

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidIdentifier = errors.New("invalid id format")

// Decode converts the 24 character hex form used in URLs into a store id.
func Decode(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
	}

	return id, nil
}

func Encode(id primitive.ObjectID) string {
	return id.Hex()
}

// IsValid reports whether raw would decode without error.
func IsValid(raw string) bool {
	return primitive.IsValidObjectID(raw)
}
