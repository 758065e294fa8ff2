package notify

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/enquiry/pkg/mailer"
	"github.com/dmitrymomot/enquiry/pkg/sanitizer"
)

//go:embed templates
var templatesFS embed.FS

// Templates returns the embedded notification templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

const defaultTemplate = "enquiry.md"

// Enquiry is the data carried into a notification.
type Enquiry struct {
	ID         string
	Name       string
	Email      string
	Message    string
	ReceivedAt time.Time
}

// SenderFactory builds the mail transport for one notification.
type SenderFactory func(ctx context.Context) (mailer.Sender, error)

// Config holds notification settings.
type Config struct {
	To       []string
	Template string
	Mail     mailer.Config
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithTemplates replaces the embedded templates.
func WithTemplates(fsys fs.FS) Option {
	return func(n *Notifier) {
		if fsys != nil {
			n.renderer = mailer.NewRenderer(fsys)
		}
	}
}

// Notifier emails the site owner about new enquiries.
type Notifier struct {
	factory  SenderFactory
	renderer *mailer.Renderer
	cfg      Config
	logger   *slog.Logger
}

// New creates a Notifier.
func New(factory SenderFactory, cfg Config, opts ...Option) (*Notifier, error) {
	if factory == nil {
		return nil, ErrNoFactory
	}
	if len(cfg.To) == 0 {
		return nil, ErrNoRecipient
	}
	if cfg.Template == "" {
		cfg.Template = defaultTemplate
	}

	n := &Notifier{
		factory:  factory,
		renderer: mailer.NewRenderer(Templates()),
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

type templateData struct {
	ID          string
	Name        string
	Email       string
	Quoted      string
	SubjectName string
	ReceivedAt  string
}

// Notify builds a transport, composes the notification and submits it once.
// The submitter's address is used as From and Reply-To; the configured
// recipients receive the message.
func (n *Notifier) Notify(ctx context.Context, e Enquiry) error {
	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Email) == "" || strings.TrimSpace(e.Message) == "" {
		return ErrInvalidInput
	}
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now()
	}

	sender, err := n.factory(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	headers := map[string]string{}
	if e.ID != "" {
		headers["X-Enquiry-ID"] = e.ID
	}

	m := mailer.New(sender, n.renderer, n.cfg.Mail)
	if err := m.Send(ctx, mailer.SendParams{
		To:       n.cfg.To,
		From:     e.Email,
		ReplyTo:  e.Email,
		Template: n.cfg.Template,
		Data:     newTemplateData(e),
		Headers:  headers,
		Tags:     mailer.SimpleTags("enquiry"),
	}); err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "enquiry notification sent",
		slog.String("enquiry_id", e.ID),
		slog.Int("recipients", len(n.cfg.To)),
	)
	return nil
}

func newTemplateData(e Enquiry) templateData {
	lines := strings.Split(sanitizer.EscapeHTML(strings.TrimSpace(e.Message)), "\n")
	for i, l := range lines {
		lines[i] = "> " + strings.TrimRight(l, "\r")
	}

	return templateData{
		ID:          e.ID,
		Name:        sanitizer.EscapeHTML(e.Name),
		Email:       sanitizer.EscapeHTML(e.Email),
		Quoted:      strings.Join(lines, "\n"),
		SubjectName: strings.Join(strings.Fields(e.Name), " "),
		ReceivedAt:  e.ReceivedAt.UTC().Format(time.RFC1123),
	}
}
