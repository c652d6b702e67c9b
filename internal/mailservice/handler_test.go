package mailservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/velvetkeys/inkpost/internal/store"
)

func TestSendPostAnnouncements(t *testing.T) {
	mockMC := &MockMessageConsumer{
		Body: []byte(`{"id": "1", "title": "Fresh Post", "excerpt": "preview..."}`),
	}
	mockMailer := &MockMailer{}
	mockLister := &MockSubscriberLister{
		Subscribers: []store.Subscriber{
			{ID: "1", Email: "a@example.com"},
			{ID: "2", Email: "b@example.com"},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		subs:   mockLister,
		logger: &MockLogger{},
		ctx:    ctx,
		cancel: cancel,
	}
	t.Cleanup(s.Close)

	s.SendPostAnnouncements()

	assert.Eventually(t, func() bool {
		return len(mockMailer.Recipients()) == 2
	}, time.Second, 10*time.Millisecond)

	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, mockMailer.Recipients())
}

func TestSendPostAnnouncementsBadPayload(t *testing.T) {
	mockMC := &MockMessageConsumer{Body: []byte(`not json`)}
	mockMailer := &MockMailer{}

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		subs:   &MockSubscriberLister{},
		logger: &MockLogger{},
		ctx:    ctx,
		cancel: cancel,
	}
	t.Cleanup(s.Close)

	s.SendPostAnnouncements()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, mockMailer.Recipients())
}
