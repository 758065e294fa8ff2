package resend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/enquiry/pkg/mailer"
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("resend: api key is required")

// Sender implements mailer.Sender on top of the Resend HTTP API.
//
// Resend only accepts verified sender domains, so when SenderEmail is set it is
// always used as From and the message's own From is moved to Reply-To if
// Reply-To is empty.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a Sender using the default HTTP client.
func New(cfg Config) (*Sender, error) {
	return NewWithClient(cfg, http.DefaultClient)
}

// NewWithClient creates a Sender that issues API calls through hc.
func NewWithClient(cfg Config, hc *http.Client) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Sender{
		client: resend.NewCustomClient(hc, cfg.APIKey),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	from, replyTo := email.From, email.ReplyTo
	if s.config.SenderEmail != "" {
		if replyTo == "" {
			replyTo = from
		}
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: replyTo,
		Headers: email.Headers,
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: send: %w", err)
	}
	return nil
}

func convertTags(tags mailer.Tags) []resend.Tag {
	out := make([]resend.Tag, 0, len(tags))
	for name, v := range tags {
		out = append(out, resend.Tag{Name: name, Value: tagValue(v)})
	}
	return out
}

// tagValue stringifies a tag value. Presence-only tags become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
