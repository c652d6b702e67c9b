package mailservice

import (
	"bytes"
	"context"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/store"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type MockMailer struct {
	mu         sync.Mutex
	recipients []string
}

func (m *MockMailer) send(recipient string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipients = append(m.recipients, recipient)
	return nil
}

func (m *MockMailer) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recipients...)
}

type MockMessageConsumer struct {
	Body []byte
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)
		msgsChan <- amqp.Delivery{Body: m.Body}
	}()

	return msgsChan, nil
}

type MockSubscriberLister struct {
	Subscribers []store.Subscriber
}

func (m *MockSubscriberLister) ListSubscribers(context.Context) ([]store.Subscriber, error) {
	return m.Subscribers, nil
}

type MockLogger struct {
	mu sync.Mutex
}

func (l *MockLogger) Error(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
}

func (l *MockLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
}
