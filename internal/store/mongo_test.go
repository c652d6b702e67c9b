package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetkeys/inkpost/internal/common"
)

func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()

	connURL := common.TestMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, connURL, "inkpost_test")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.db.Drop(context.Background())
		s.Close(context.Background())
	})

	return s
}

// mongo stores timestamps at millisecond precision
func mongoTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func TestMongoStorePostRoundTrip(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	post := testPost("1", mongoTime(time.Now()))
	require.NoError(t, s.InsertPost(ctx, post))

	got, err := s.GetPost(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Content, got.Content)
	assert.True(t, post.Date.Equal(got.Date))
}

func TestMongoStoreGetPostNotFound(t *testing.T) {
	s := newTestMongoStore(t)

	_, err := s.GetPost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoStoreListPostsOrder(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	base := mongoTime(time.Now())
	require.NoError(t, s.InsertPost(ctx, testPost("old", base.Add(-2*time.Hour))))
	require.NoError(t, s.InsertPost(ctx, testPost("new", base)))
	require.NoError(t, s.InsertPost(ctx, testPost("mid", base.Add(-1*time.Hour))))

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "new", posts[0].ID)
	assert.Equal(t, "mid", posts[1].ID)
	assert.Equal(t, "old", posts[2].ID)

	// the content projection keeps list reads metadata only
	for _, p := range posts {
		assert.Empty(t, p.Content)
	}
}

func TestMongoStoreUpdatePost(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	post := testPost("1", mongoTime(time.Now()))
	require.NoError(t, s.InsertPost(ctx, post))

	update := *post
	update.Title = "Updated Title"
	update.Content = "updated content"
	require.NoError(t, s.UpdatePost(ctx, &update))

	got, err := s.GetPost(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", got.Title)
	assert.Equal(t, "updated content", got.Content)

	missing := *post
	missing.ID = "missing"
	assert.ErrorIs(t, s.UpdatePost(ctx, &missing), ErrNotFound)
}

func TestMongoStoreDeletePost(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertPost(ctx, testPost("1", mongoTime(time.Now()))))

	require.NoError(t, s.DeletePost(ctx, "1"))

	_, err := s.GetPost(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeletePost(ctx, "1"), ErrNotFound)
}

func TestMongoStoreAbout(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	// the default about document is materialized at construction
	about, err := s.GetAbout(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultAboutTitle, about.Title)

	require.NoError(t, s.PutAbout(ctx, &About{Title: "Me", Content: "hello"}))

	about, err = s.GetAbout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Me", about.Title)
	assert.Equal(t, "hello", about.Content)
}

func TestMongoStoreSubscribers(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	sub := &Subscriber{ID: "1", Email: "a@b.com", SubscribedAt: mongoTime(time.Now())}
	require.NoError(t, s.InsertSubscriber(ctx, sub))

	dup := &Subscriber{ID: "2", Email: "a@b.com", SubscribedAt: mongoTime(time.Now())}
	assert.ErrorIs(t, s.InsertSubscriber(ctx, dup), ErrDuplicateEmail)

	subs, err := s.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "a@b.com", subs[0].Email)

	require.NoError(t, s.DeleteSubscriber(ctx, "1"))
	assert.ErrorIs(t, s.DeleteSubscriber(ctx, "1"), ErrNotFound)
}
