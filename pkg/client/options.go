package client

import (
	"log/slog"
	"net/http"
	"time"
)

// Defaults.
const (
	DefaultEndpoint    = "http://localhost:5001/api/submit-enquiry"
	DefaultBannerTTL   = 5 * time.Second
	DefaultBusyLabel   = "Sending..."
	DefaultSubmitLabel = "Send Message"
)

// Banner texts used when the server supplies none.
const (
	MsgSent          = "Message sent! I'll get back to you soon."
	MsgFailed        = "Failed to send message."
	MsgNetworkFailed = "An error occurred. Please try again later."
)

// Option configures a Form.
type Option func(*Form)

// WithEndpoint sets the submission URL.
func WithEndpoint(url string) Option {
	return func(f *Form) {
		if url != "" {
			f.endpoint = url
		}
	}
}

// WithHTTPClient sets the HTTP client. Timeouts belong to the client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) {
		if c != nil {
			f.http = c
		}
	}
}

// WithBannerTTL sets how long a success banner stays visible.
func WithBannerTTL(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.bannerTTL = d
		}
	}
}

// WithBusyLabel sets the submit button label shown while a request is in flight.
func WithBusyLabel(label string) Option {
	return func(f *Form) {
		if label != "" {
			f.busyLabel = label
		}
	}
}

// WithSubmitLabel sets the idle submit button label.
func WithSubmitLabel(label string) Option {
	return func(f *Form) {
		if label != "" {
			f.button.Label = label
		}
	}
}

// WithLogger sets the logger used for submission errors.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}
