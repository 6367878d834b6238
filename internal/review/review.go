// Package review wires the reviews collection into the generic resource
// handlers. Reviews cannot be updated once written.
package review

import (
	"github.com/SergeyParamoshkin/skillshare/internal/model"
	"github.com/SergeyParamoshkin/skillshare/internal/resource"
	"github.com/SergeyParamoshkin/skillshare/internal/store"
)

type Service = resource.Service[model.Review, model.NoUpdate]

var Schema = resource.Schema[model.Review, model.NoUpdate]{
	Name:       "review",
	Collection: "reviews",
	SortField:  "created_at_ts",
	Prepare:    (*model.Review).Prepare,
}

func NewService(db store.Database, opts ...resource.Option) *Service {
	return resource.NewService(db, Schema, opts...)
}

func NewHandler(db store.Database, opts ...resource.Option) *resource.Handler[model.Review, model.NoUpdate] {
	return resource.NewHandler(NewService(db, opts...))
}
