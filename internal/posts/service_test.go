package posts

import (
	"context"
	"fmt"
	"testing"

	"github.com/growly/growly-web/pkg/db/dbtest"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	return svc, repo
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreatePostDTO{Title: "   ", Body: "x"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	post, err := svc.Create(context.Background(), CreatePostDTO{Title: " Growth tips "})
	require.NoError(t, err)
	assert.Equal(t, "Growth tips", post.Title)
	assert.Zero(t, post.ViewCount)
}

func TestViewIncrementsByExactlyOne(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, CreatePostDTO{Title: "Reels"})
	require.NoError(t, err)

	for want := int64(1); want <= 3; want++ {
		viewed, err := svc.View(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, want, viewed.ViewCount)

		stored, err := repo.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, want, stored.ViewCount)
	}
}

func TestViewMissingPost(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.View(context.Background(), 77)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		_, err := svc.Create(ctx, CreatePostDTO{Title: fmt.Sprintf("post %02d", i)})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, first.Posts, 10)
	assert.True(t, first.Page.HasNext)
	assert.False(t, first.Page.HasPrev)
	assert.Equal(t, "post 12", first.Posts[0].Title)

	second, err := svc.List(ctx, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, second.Posts, 2)
	assert.False(t, second.Page.HasNext)
	assert.True(t, second.Page.HasPrev)
	assert.Equal(t, "post 01", second.Posts[1].Title)
}

func TestListEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.List(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.NotNil(t, res.Posts)
	assert.Empty(t, res.Posts)
}
