// Package smtp implements mailer.Sender over SMTP with username/password auth.
package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/enquiry/pkg/mailer"
)

var (
	ErrMissingHost        = errors.New("smtp: host is required")
	ErrMissingCredentials = errors.New("smtp: username and password are required")
	ErrInvalidTLSPolicy   = errors.New("smtp: unknown tls policy")
)

// Transport delivers composed messages. *mail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Sender implements mailer.Sender.
type Sender struct {
	transport Transport
	from      string
}

// New builds a Sender with a go-mail client configured from cfg.
// No connection is made until Send.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}

	policy, err := tlsPolicy(cfg.TLS)
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(policy),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: create client: %w", err)
	}

	return NewWithTransport(client, cfg.Username), nil
}

// NewWithTransport builds a Sender around an existing transport.
// from is used when a message carries no From of its own.
func NewWithTransport(t Transport, from string) *Sender {
	return &Sender{transport: t, from: from}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := s.Compose(email)
	if err != nil {
		return err
	}
	if err := s.transport.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}

// Compose converts email into a MIME message.
// Text becomes the primary part and HTML the alternative.
func (s *Sender) Compose(email *mailer.Email) (*mail.Msg, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	from := email.From
	if from == "" {
		from = s.from
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("smtp: from %q: %w", from, err)
	}
	if err := m.To(email.To...); err != nil {
		return nil, fmt.Errorf("smtp: to: %w", err)
	}
	if email.ReplyTo != "" {
		if err := m.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp: reply-to %q: %w", email.ReplyTo, err)
		}
	}
	m.Subject(email.Subject)
	m.SetDate()
	m.SetMessageID()

	for k, v := range email.Headers {
		m.SetGenHeader(mail.Header(k), v)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBodyString(mail.TypeTextPlain, email.Text)
		m.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	case email.HTML != "":
		m.SetBodyString(mail.TypeTextHTML, email.HTML)
	default:
		m.SetBodyString(mail.TypeTextPlain, email.Text)
	}

	return m, nil
}

func tlsPolicy(s string) (mail.TLSPolicy, error) {
	switch s {
	case "", "mandatory":
		return mail.TLSMandatory, nil
	case "opportunistic":
		return mail.TLSOpportunistic, nil
	case "none":
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, fmt.Errorf("%w: %q", ErrInvalidTLSPolicy, s)
	}
}
