// Package user wires the users collection into the generic resource
// handlers. Users are addressed by identifier or by exact username.
package user

import (
	"github.com/SergeyParamoshkin/skillshare/internal/model"
	"github.com/SergeyParamoshkin/skillshare/internal/resource"
	"github.com/SergeyParamoshkin/skillshare/internal/store"
)

type Service = resource.Service[model.User, model.UserUpdate]

var Schema = resource.Schema[model.User, model.UserUpdate]{
	Name:         "user",
	Collection:   "users",
	SecondaryKey: "username",
	Updatable:    true,
	Prepare:      (*model.User).Prepare,
}

func NewService(db store.Database, opts ...resource.Option) *Service {
	return resource.NewService(db, Schema, opts...)
}

func NewHandler(db store.Database, opts ...resource.Option) *resource.Handler[model.User, model.UserUpdate] {
	return resource.NewHandler(NewService(db, opts...))
}
