package store

import (
	"context"
	"fmt"
)

// Unavailable stands in for a backend that failed to initialize at boot.
// The server still listens; every operation surfaces the original failure
// wrapped in ErrUnavailable until the process is restarted with a working
// backend.
type Unavailable struct {
	Reason error
}

func NewUnavailable(reason error) *Unavailable {
	return &Unavailable{Reason: reason}
}

func (u *Unavailable) err() error {
	return fmt.Errorf("%w: %v", ErrUnavailable, u.Reason)
}

func (u *Unavailable) ListPosts(context.Context) ([]Post, error)       { return nil, u.err() }
func (u *Unavailable) GetPost(context.Context, string) (*Post, error)  { return nil, u.err() }
func (u *Unavailable) InsertPost(context.Context, *Post) error         { return u.err() }
func (u *Unavailable) UpdatePost(context.Context, *Post) error         { return u.err() }
func (u *Unavailable) DeletePost(context.Context, string) error        { return u.err() }
func (u *Unavailable) GetAbout(context.Context) (*About, error)        { return nil, u.err() }
func (u *Unavailable) PutAbout(context.Context, *About) error          { return u.err() }
func (u *Unavailable) ListSubscribers(context.Context) ([]Subscriber, error) {
	return nil, u.err()
}
func (u *Unavailable) InsertSubscriber(context.Context, *Subscriber) error { return u.err() }
func (u *Unavailable) DeleteSubscriber(context.Context, string) error      { return u.err() }
