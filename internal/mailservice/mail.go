package mailservice

import (
	"time"

	"github.com/go-mail/mail/v2"
)

// announcementTemplate is the only email this service sends; the template
// name is baked into the mailer instead of travelling with every call.
const announcementTemplate = "announcement_email.html"

const dialTimeout = 5 * time.Second

// NewMailer builds the SMTP mailer used by the announcement consumer. The
// dial timeout keeps one unreachable SMTP host from stalling the whole
// subscriber fan-out.
func NewMailer(host string, port int, username, password, sender string, tp TemplateParser) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = dialTimeout

	return &Mail{
		dialer:   dialer,
		sender:   sender,
		parser:   tp,
		template: announcementTemplate,
	}
}

// send renders the announcement template for one recipient and delivers it
// as a multipart message with plain-text and HTML alternatives.
func (m *Mail) send(recipient string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subject, plainBody, htmlBody, err := m.parser.ParseTemplate(m.template, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	return m.dialer.DialAndSend(msg)
}
