package postservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/store"
)

const listCacheTTL = time.Minute

// List returns the metadata of every post, newest first.
func (s *PostService) List(ctx context.Context) ([]store.Post, error) {
	if cached, ok := s.c.Get(common.CacheKeyPostList()); ok {
		return cached.([]store.Post), nil
	}

	posts, err := s.s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPostList(), posts, listCacheTTL)

	return posts, nil
}

// Get returns one post with its content rendered to HTML alongside the raw
// markdown.
func (s *PostService) Get(ctx context.Context, id string) (*PostView, error) {
	v := common.NewValidator()
	validateID(v, id)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyPost(id)); ok {
		return cached.(*PostView), nil
	}

	post, err := s.s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &PostView{
		ID:         post.ID,
		Title:      post.Title,
		Author:     post.Author,
		Date:       post.Date.Format(time.RFC3339),
		Excerpt:    post.Excerpt,
		CoverImage: post.CoverImage,
		Content:    common.RenderMarkdown(post.Content),
		RawContent: post.Content,
	}

	s.c.Set(common.CacheKeyPost(id), view, listCacheTTL)

	return view, nil
}

// Create validates and normalizes the request, assigns the immutable id and
// creation date, and persists the new post.
func (s *PostService) Create(ctx context.Context, req *CreatePostRequest) (*store.Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateAuthor(v, req.Author)
	validateContent(v, req.Content)
	validateExcerpt(v, req.Excerpt)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	author := req.Author
	if author == "" {
		author = "Admin"
	}

	now := time.Now().UTC()
	post := &store.Post{
		ID:         newPostID(now),
		Title:      req.Title,
		Author:     author,
		Date:       now,
		Excerpt:    deriveExcerpt(req.Content, req.Excerpt),
		CoverImage: normalizeCoverImage(req.CoverImage),
		Filename:   newFilename(now, req.Title),
		Content:    req.Content,
	}

	if err := s.s.InsertPost(ctx, post); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyPostList())
	s.announce(post)

	return post, nil
}

// announce publishes a post-published event to the broker. Failures are
// logged, never surfaced: a broken broker must not fail the create.
func (s *PostService) announce(post *store.Post) {
	if s.mb == nil {
		return
	}

	msg, err := json.Marshal(Announcement{ID: post.ID, Title: post.Title, Excerpt: post.Excerpt})
	if err != nil {
		s.logger.Error("could not marshal announcement", slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.mb.Publish(ctx, msg, common.PostPublishedKey, common.PostExchange); err != nil {
		s.logger.Error("could not publish announcement", slog.String("post_id", post.ID), slog.String("error", err.Error()))
	}
}

// Update overwrites an existing post. The id, creation date, and filename
// are immutable; a blank author falls back to the stored one, a blank
// excerpt is re-derived from the new content, and a blank cover image
// preserves the stored one.
func (s *PostService) Update(ctx context.Context, req *UpdatePostRequest) (*store.Post, error) {
	v := common.NewValidator()
	validateID(v, req.ID)
	validateTitle(v, req.Title)
	validateAuthor(v, req.Author)
	validateContent(v, req.Content)
	validateExcerpt(v, req.Excerpt)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	existing, err := s.s.GetPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	author := req.Author
	if author == "" {
		author = existing.Author
	}

	coverImage := existing.CoverImage
	if req.CoverImage != "" {
		coverImage = normalizeCoverImage(req.CoverImage)
	}

	post := &store.Post{
		ID:         existing.ID,
		Title:      req.Title,
		Author:     author,
		Date:       existing.Date,
		Excerpt:    deriveExcerpt(req.Content, req.Excerpt),
		CoverImage: coverImage,
		Filename:   existing.Filename,
		Content:    req.Content,
	}

	if err := s.s.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyPostList())
	s.c.Delete(common.CacheKeyPost(post.ID))

	return post, nil
}

// Delete removes a post. The index entry removal is authoritative; an
// orphaned content artifact is a non-fatal condition handled by the store.
func (s *PostService) Delete(ctx context.Context, id string) error {
	v := common.NewValidator()
	validateID(v, id)
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.s.DeletePost(ctx, id); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyPostList())
	s.c.Delete(common.CacheKeyPost(id))

	return nil
}

func (s *PostService) GetAbout(ctx context.Context) (*AboutView, error) {
	if cached, ok := s.c.Get(common.CacheKeyAbout()); ok {
		return cached.(*AboutView), nil
	}

	about, err := s.s.GetAbout(ctx)
	if err != nil {
		return nil, err
	}

	view := &AboutView{
		Title:      about.Title,
		Content:    common.RenderMarkdown(about.Content),
		RawContent: about.Content,
	}

	s.c.Set(common.CacheKeyAbout(), view, listCacheTTL)

	return view, nil
}

// UpdateAbout fully overwrites the singleton about page.
func (s *PostService) UpdateAbout(ctx context.Context, title, content string) (*store.About, error) {
	v := common.NewValidator()
	validateTitle(v, title)
	validateContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	about := &store.About{Title: title, Content: content}
	if err := s.s.PutAbout(ctx, about); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyAbout())

	return about, nil
}
