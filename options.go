package enquiry

import (
	"log/slog"

	"github.com/dmitrymomot/enquiry/pkg/notify"
)

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	logger  *slog.Logger
	senders notify.SenderFactory
}

// WithLogger sets the logger. By default one is built from Config.Logger
// with request IDs attached to every record.
func WithLogger(l *slog.Logger) ServerOption {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSenderFactory overrides the mail transport chosen by MAIL_PROVIDER.
func WithSenderFactory(f notify.SenderFactory) ServerOption {
	return func(o *serverOptions) {
		if f != nil {
			o.senders = f
		}
	}
}
