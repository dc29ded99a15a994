package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPDispatcher sends mail through an SMTP relay. One instance is created at
// start-up and shared by every request.
type SMTPDispatcher struct {
	dialer *gomail.Dialer
	from   string
	host   string
}

// NewSMTPDispatcher builds a dispatcher for the given relay.
// from is a full RFC 5322 address, e.g. "Trip Planner <trips@example.com>".
func NewSMTPDispatcher(host string, port int, user, password, from string) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		host:   host,
	}
}

// Send dials the relay and delivers msg. gomail has no context support, so
// the dial runs in its own goroutine and Send returns as soon as ctx is done;
// the abandoned dial finishes in the background.
func (s *SMTPDispatcher) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, fmt.Errorf("notify.SMTPDispatcher.Send: %w", err)
	}
	m, receipt := s.compose(msg)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return Receipt{}, fmt.Errorf("notify.SMTPDispatcher.Send: %w", err)
		}
		return receipt, nil
	case <-ctx.Done():
		return Receipt{}, fmt.Errorf("notify.SMTPDispatcher.Send: %w", ctx.Err())
	}
}

func (s *SMTPDispatcher) compose(msg Message) (*gomail.Message, Receipt) {
	receipt := Receipt{MessageID: fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host)}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", receipt.MessageID)
	m.SetBody("text/html", msg.HTML)
	return m, receipt
}
