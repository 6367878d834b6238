package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyPatch       = errors.New("no updatable fields in request")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotUpdatable     = errors.New("resource does not support updates")
	ErrMalformedBody    = errors.New("malformed request body")
)

// ValidationError reports every field of a payload that failed its schema
// rules, keyed by JSON field name.
type ValidationError struct {
	Resource string
	Fields   map[string]string

	err error
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}

	return fmt.Sprintf("invalid %s: %s", e.Resource, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.err }

func newValidationError(resource string, errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = describe(fe)
	}

	return &ValidationError{Resource: resource, Fields: fields, err: errs}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
