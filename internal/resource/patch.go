package resource

import (
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// BuildPatch turns an update payload into the $set document for a partial
// update. Only pointer, slice and map fields that are non-nil are kept, so
// update types declare every optional field as one of those kinds. The bson
// tag decides the stored field name.
func BuildPatch(update interface{}) (bson.M, error) {
	v := reflect.Indirect(reflect.ValueOf(update))
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("patch source must be a struct, got %T", update)
	}

	patch := bson.M{}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		name := bsonName(field)
		if name == "-" {
			continue
		}

		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			if fv.IsNil() {
				continue
			}
		}

		patch[name] = reflect.Indirect(fv).Interface()
	}

	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}

	return patch, nil
}

func bsonName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("bson"), ",")[0]
	if name == "" {
		return strings.ToLower(field.Name)
	}

	return name
}
