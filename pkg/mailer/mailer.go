package mailer

import (
	"context"
	"errors"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes a templated message.
type SendParams struct {
	To       []string
	Template string
	Data     any

	Subject string // Overrides the template subject
	Layout  string // Used when the template names no layout; defaults to Config.DefaultLayout
	From    string
	ReplyTo string
	Headers map[string]string
	Tags    Tags
}

// Send renders params.Template and delivers it.
// Subject resolution: params.Subject, then template frontmatter, then Config.FallbackSubject.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if len(params.To) == 0 {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	out, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject = out.Subject
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	return m.SendRaw(ctx, &Email{
		To:      params.To,
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    out.HTML,
		Text:    out.Text,
		Headers: params.Headers,
		Tags:    params.Tags,
	})
}

// SendRaw validates and delivers a pre-built email.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
