package postservice

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/store"
)

type capturedMessage struct {
	body     []byte
	key      common.BindingKey
	exchange common.Exchange
}

type stubProducer struct {
	messages []capturedMessage
}

func (p *stubProducer) Publish(_ context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.messages = append(p.messages, capturedMessage{body: msg, key: key, exchange: exchange})
	return nil
}

func newTestService(t *testing.T) (*PostService, *stubProducer) {
	t.Helper()

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	mb := &stubProducer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPostService(s, common.NewCache(0, 0), mb, logger), mb
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	markdown := "# Hello\n\nSome *markdown* body."

	post, err := svc.Create(ctx, &CreatePostRequest{Title: "First Post", Content: markdown})
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Admin", post.Author)
	assert.False(t, post.Date.IsZero())

	view, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)

	assert.Equal(t, markdown, view.RawContent)
	assert.Equal(t, common.RenderMarkdown(markdown), view.Content)
	assert.Contains(t, view.Content, "<h1")
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		req   *CreatePostRequest
		field string
	}{
		{name: "missing title", req: &CreatePostRequest{Content: "body"}, field: "title"},
		{name: "missing content", req: &CreatePostRequest{Title: "t"}, field: "content"},
		{name: "title too long", req: &CreatePostRequest{Title: strings.Repeat("a", 201), Content: "body"}, field: "title"},
		{name: "content too large", req: &CreatePostRequest{Title: "t", Content: strings.Repeat("a", maxContentBytes+1)}, field: "content"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)

			var validationErr common.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Errors, tc.field)
		})
	}
}

func TestCreateDerivesFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, &CreatePostRequest{
		Title:      "Cover Test",
		Content:    "# Heading *bold*",
		CoverImage: "![pic](https://x/y.png)",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://x/y.png", post.CoverImage)
	assert.Equal(t, "Heading bold...", post.Excerpt)
	assert.Contains(t, post.Filename, "cover-test")
}

func TestCreatePublishesAnnouncement(t *testing.T) {
	svc, mb := newTestService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, &CreatePostRequest{Title: "Announced", Content: "body"})
	require.NoError(t, err)

	require.Len(t, mb.messages, 1)
	assert.Equal(t, common.PostPublishedKey, mb.messages[0].key)
	assert.Equal(t, common.PostExchange, mb.messages[0].exchange)

	var ann Announcement
	require.NoError(t, json.Unmarshal(mb.messages[0].body, &ann))
	assert.Equal(t, post.ID, ann.ID)
	assert.Equal(t, "Announced", ann.Title)
}

func TestUpdateImmutableFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreatePostRequest{Title: "Original", Content: "original body"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &UpdatePostRequest{
		ID:      created.ID,
		Title:   "Changed",
		Content: "changed body",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.Date.Equal(updated.Date))
	assert.Equal(t, created.Filename, updated.Filename)
	assert.Equal(t, "Changed", updated.Title)

	// blank author falls back to the stored one
	assert.Equal(t, "Admin", updated.Author)
}

func TestUpdatePreservesCoverImage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreatePostRequest{
		Title:      "With Cover",
		Content:    "body",
		CoverImage: "https://x/cover.png",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &UpdatePostRequest{ID: created.ID, Title: "With Cover", Content: "new body"})
	require.NoError(t, err)
	assert.Equal(t, "https://x/cover.png", updated.CoverImage)

	updated, err = svc.Update(ctx, &UpdatePostRequest{
		ID:         created.ID,
		Title:      "With Cover",
		Content:    "new body",
		CoverImage: "![new](https://x/new.png)",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x/new.png", updated.CoverImage)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), &UpdatePostRequest{ID: "missing", Title: "t", Content: "c"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteThenGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreatePostRequest{Title: "Doomed", Content: "body"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), store.ErrNotFound)
}

func TestListOrderedByDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, &CreatePostRequest{Title: title, Content: "body of " + title})
		require.NoError(t, err)
	}

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i-1].Date.Before(posts[i].Date), "posts must be ordered by date descending")
	}
}

func TestListCacheInvalidatedOnCreate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreatePostRequest{Title: "first", Content: "body"})
	require.NoError(t, err)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	_, err = svc.Create(ctx, &CreatePostRequest{Title: "second", Content: "body"})
	require.NoError(t, err)

	posts, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestAbout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.GetAbout(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DefaultAboutTitle, view.Title)

	_, err = svc.UpdateAbout(ctx, "About", "# My Story")
	require.NoError(t, err)

	view, err = svc.GetAbout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "About", view.Title)
	assert.Equal(t, "# My Story", view.RawContent)
	assert.Contains(t, view.Content, "<h1")
}

func TestUpdateAboutValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateAbout(context.Background(), "", "")

	var validationErr common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "title")
	assert.Contains(t, validationErr.Errors, "content")
}
