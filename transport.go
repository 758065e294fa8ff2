package enquiry

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/enquiry/pkg/mailer"
	"github.com/dmitrymomot/enquiry/pkg/mailer/resend"
	"github.com/dmitrymomot/enquiry/pkg/mailer/smtp"
	"github.com/dmitrymomot/enquiry/pkg/notify"
)

// senderFactory returns a factory that builds a fresh transport for every
// notification, so a bad credential surfaces as a logged delivery failure
// rather than a startup error.
func senderFactory(cfg Config) (notify.SenderFactory, error) {
	switch cfg.MailProvider {
	case ProviderSMTP:
		return func(context.Context) (mailer.Sender, error) {
			s, err := smtp.New(cfg.SMTP)
			if err != nil {
				return nil, err
			}
			return s, nil
		}, nil
	case ProviderResend:
		return func(context.Context) (mailer.Sender, error) {
			s, err := resend.New(cfg.Resend)
			if err != nil {
				return nil, err
			}
			return s, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.MailProvider)
	}
}
