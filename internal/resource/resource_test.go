package resource

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SergeyParamoshkin/skillshare/internal/store/memstore"
)

type widget struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name" validate:"required"`
	Email   string             `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Tags    []string           `json:"tags" bson:"tags"`
	Created time.Time          `json:"-" bson:"created"`
}

type widgetUpdate struct {
	Name  *string  `json:"name" bson:"name" validate:"omitnil,min=1"`
	Email *string  `json:"email" bson:"email" validate:"omitnil,email"`
	Tags  []string `json:"tags" bson:"tags"`
}

func prepareWidget(w *widget, now time.Time) {
	w.ID = primitive.NilObjectID
	w.Created = now
	if w.Tags == nil {
		w.Tags = []string{}
	}
}

var widgetSchema = Schema[widget, widgetUpdate]{
	Name:         "widget",
	Collection:   "widgets",
	SortField:    "created",
	SecondaryKey: "name",
	Updatable:    true,
	Prepare:      prepareWidget,
}

// tickingClock returns strictly increasing times, one minute apart.
func tickingClock() func() time.Time {
	next := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func newWidgetService(t *testing.T) (*Service[widget, widgetUpdate], *memstore.Collection) {
	t.Helper()

	db := memstore.New()
	svc := NewService(db, widgetSchema, WithClock(tickingClock()))

	return svc, db.Get(widgetSchema.Collection)
}

func strPtr(s string) *string { return &s }

func mustCreate(t *testing.T, svc *Service[widget, widgetUpdate], name string) *widget {
	t.Helper()

	w, err := svc.Create(context.Background(), &widget{Name: name})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}

	return w
}

func memstoreDB() *memstore.Database {
	return memstore.New()
}
