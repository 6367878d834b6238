package article

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/skillshare/internal/model"
	"github.com/SergeyParamoshkin/skillshare/internal/resource"
	"github.com/SergeyParamoshkin/skillshare/internal/store/memstore"
)

func newTestService() *Service {
	next := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}

	return NewService(memstore.New(), resource.WithClock(clock))
}

func create(t *testing.T, svc *Service, title string) *model.Article {
	t.Helper()

	a, err := svc.Create(context.Background(), &model.Article{
		Username: "alice",
		Title:    title,
		Topic:    "go",
		Body:     "body of " + title,
	})
	require.NoError(t, err)

	return a
}

func titles(articles []model.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Title)
	}

	return out
}

func TestListOrderByCreation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	for _, title := range []string{"one", "two", "three"} {
		create(t, svc, title)
	}

	desc, err := svc.List(ctx, "DESC")
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two", "one"}, titles(desc))

	asc, err := svc.List(ctx, "ASC")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, titles(asc))

	def, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, titles(desc), titles(def))
}

func TestCreatedAtFormat(t *testing.T) {
	svc := newTestService()
	a := create(t, svc, "one")

	assert.Equal(t, "01/05/2024 08:00:00", a.CreatedAt)
}

func TestUpdateKeepsCreationFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a := create(t, svc, "one")
	title := "uno"

	updated, err := svc.Update(ctx, a.ID.Hex(), &model.ArticleUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "uno", updated.Title)
	assert.Equal(t, a.Topic, updated.Topic)
	assert.Equal(t, a.Body, updated.Body)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)
	assert.True(t, a.CreatedAtTS.Equal(updated.CreatedAtTS))
}

func TestUpdateRequiresAField(t *testing.T) {
	svc := newTestService()
	a := create(t, svc, "one")

	_, err := svc.Update(context.Background(), a.ID.Hex(), &model.ArticleUpdate{})
	assert.ErrorIs(t, err, resource.ErrEmptyPatch)
}

func TestCreateRequiresFields(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), &model.Article{Username: "alice"})

	var verr *resource.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}
