package newsletterservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/store"
)

func newTestService(t *testing.T) *NewsletterService {
	t.Helper()

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	return NewNewsletterService(s)
}

func TestSubscribe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "Reader@Example.COM")
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.False(t, sub.SubscribedAt.IsZero())
}

func TestSubscribeDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "a@b.com")
	require.NoError(t, err)

	_, err = svc.Subscribe(ctx, "A@B.COM")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	subs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc := newTestService(t)

	testCases := []string{"", "not-an-email", "missing@tld", "@example.com"}

	for _, email := range testCases {
		t.Run(email, func(t *testing.T) {
			_, err := svc.Subscribe(context.Background(), email)

			var validationErr common.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Errors, "email")
		})
	}
}

func TestDeleteSubscriber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "a@b.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sub.ID))
	assert.ErrorIs(t, svc.Delete(ctx, sub.ID), store.ErrNotFound)
}
