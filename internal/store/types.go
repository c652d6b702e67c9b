package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("duplicate subscriber email")
	ErrUnavailable    = errors.New("storage backend unavailable")
)

// Post is a single blog entry. Content is only populated on single-post
// reads; list reads return metadata alone. Filename is set by the
// file-backed store and empty elsewhere.
type Post struct {
	ID         string    `json:"id" bson:"id"`
	Title      string    `json:"title" bson:"title"`
	Author     string    `json:"author" bson:"author"`
	Date       time.Time `json:"date" bson:"date"`
	Excerpt    string    `json:"excerpt" bson:"excerpt"`
	CoverImage string    `json:"coverImage" bson:"coverImage"`
	Filename   string    `json:"filename,omitempty" bson:"filename,omitempty"`
	Content    string    `json:"content,omitempty" bson:"content,omitempty"`
}

// About is the singleton about-page record.
type About struct {
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

type Subscriber struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	SubscribedAt time.Time `json:"subscribedAt" bson:"subscribedAt"`
}

// Store is the persistence contract shared by the file-backed and the
// hosted document-store implementations. Records are written whole; there
// is no partial-field patch.
type Store interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	InsertPost(ctx context.Context, post *Post) error
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id string) error

	GetAbout(ctx context.Context) (*About, error)
	PutAbout(ctx context.Context, about *About) error

	ListSubscribers(ctx context.Context) ([]Subscriber, error)
	InsertSubscriber(ctx context.Context, sub *Subscriber) error
	DeleteSubscriber(ctx context.Context, id string) error
}

const (
	DefaultAboutTitle   = "About Me"
	DefaultAboutContent = "Welcome to my blog! Edit this page to tell readers about yourself."
)
