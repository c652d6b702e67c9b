package newsletterservice

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/store"
)

// Subscribe validates the email, lowercases it, and appends a subscriber
// with a fresh time-derived id. A duplicate email (case-insensitive)
// surfaces as store.ErrDuplicateEmail.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*store.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	v := common.NewValidator()
	validateEmail(v, email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	now := time.Now().UTC()
	sub := &store.Subscriber{
		ID:           strconv.FormatInt(now.UnixNano(), 10),
		Email:        email,
		SubscribedAt: now,
	}

	if err := s.s.InsertSubscriber(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// List returns every subscriber.
func (s *NewsletterService) List(ctx context.Context) ([]store.Subscriber, error) {
	return s.s.ListSubscribers(ctx)
}

// Delete removes a subscriber by id.
func (s *NewsletterService) Delete(ctx context.Context, id string) error {
	v := common.NewValidator()
	v.Check(id != "", "id", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.s.DeleteSubscriber(ctx, id)
}
