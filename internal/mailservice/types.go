package mailservice

import (
	"bytes"
	"context"
	"sync"

	"github.com/go-mail/mail/v2"

	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/store"
)

type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	subs   SubscriberLister
	logger MailLogger
	ctx    context.Context
	cancel context.CancelFunc
}

// SubscriberLister is the slice of the store the mail consumer needs.
type SubscriberLister interface {
	ListSubscribers(ctx context.Context) ([]store.Subscriber, error)
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu       sync.Mutex
	dialer   Dialer
	parser   TemplateParser
	sender   string
	template string
}

type Mailer interface {
	send(recipient string, data any) error
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}
