package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/velvetkeys/inkpost/internal/common"
)

func NewMailService(mb common.MessageConsumer, subs SubscriberLister, host, username, password, sender string, port int, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		subs:   subs,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendPostAnnouncements consumes post-published events from the broker and
// emails every newsletter subscriber. An event is acked once processed,
// even if some sends failed after retrying: announcements are best effort
// and must not pile up in the queue.
func (s *MailService) SendPostAnnouncements() {
	msgs, err := s.mb.Consume(common.PostPublishedKey, common.PostExchange, common.PostPublishedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					ID      string `json:"id"`
					Title   string `json:"title"`
					Excerpt string `json:"excerpt"`
				}

				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				subscribers, err := s.subs.ListSubscribers(s.ctx)
				if err != nil {
					s.logger.Error("could not list subscribers", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				payload := struct {
					Title   string
					Excerpt string
				}{
					Title:   data.Title,
					Excerpt: data.Excerpt,
				}

				for _, sub := range subscribers {
					s.sendWithRetry(sub.Email, payload)
				}

				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendPostAnnouncements due to context cancellation")
				return
			}
		}
	}()
}

// sendWithRetry sends one announcement using exponential backoff with jitter.
func (s *MailService) sendWithRetry(recipient string, payload any) {
	const maxRetries = 5
	const baseDelay = 500 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(recipient, payload)
		if err == nil {
			s.logger.Info("announcement email sent", slog.String("email", recipient))
			return
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying announcement email", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))
		time.Sleep(delay)
	}

	s.logger.Error("could not send announcement email", slog.String("email", recipient))
}

func (s *MailService) Close() {
	s.cancel()
}
