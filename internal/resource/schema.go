package resource

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxListSize caps every List call. There is no further pagination.
const MaxListSize = 1000

// Schema describes one resource type. T is the stored document and U the
// update payload; validation rules live in their `validate` struct tags.
type Schema[T any, U any] struct {
	// Name is the singular used in error messages, e.g. "user".
	Name string
	// Collection is the store collection and the key wrapping list responses.
	Collection string
	// SortField is the bson field List orders by. Empty keeps insertion
	// order and ignores the sort parameter.
	SortField string
	// SecondaryKey is an optional bson field documents can also be fetched
	// and updated by, e.g. "username".
	SecondaryKey string
	// Updatable enables the partial update operation.
	Updatable bool
	// Prepare stamps server generated fields and fills defaults before
	// insert. It must clear any client supplied identifier.
	Prepare func(doc *T, now time.Time)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	return v
}
