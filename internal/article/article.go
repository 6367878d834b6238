// Package article wires the articles collection into the generic resource
// handlers, ordered by creation time.
package article

import (
	"github.com/SergeyParamoshkin/skillshare/internal/model"
	"github.com/SergeyParamoshkin/skillshare/internal/resource"
	"github.com/SergeyParamoshkin/skillshare/internal/store"
)

type Service = resource.Service[model.Article, model.ArticleUpdate]

var Schema = resource.Schema[model.Article, model.ArticleUpdate]{
	Name:       "article",
	Collection: "articles",
	SortField:  "created_at_ts",
	Updatable:  true,
	Prepare:    (*model.Article).Prepare,
}

func NewService(db store.Database, opts ...resource.Option) *Service {
	return resource.NewService(db, Schema, opts...)
}

func NewHandler(db store.Database, opts ...resource.Option) *resource.Handler[model.Article, model.ArticleUpdate] {
	return resource.NewHandler(NewService(db, opts...))
}
