package dispatch

import (
	"log/slog"

	"github.com/dmitrymomot/enquiry/pkg/diaglog"
)

// EntryAppender persists diagnostic entries. Implemented by *diaglog.Writer.
type EntryAppender interface {
	Append(e diaglog.Entry) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for task outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDiagLog records every failed task to the given appender.
// message prefixes each entry's error text (e.g. "Error sending email").
func WithDiagLog(a EntryAppender, message string) Option {
	return func(d *Dispatcher) {
		if a != nil {
			d.diag = a
			d.diagMessage = message
		}
	}
}

// WithOnFailure registers a callback invoked after a task fails and has been recorded.
// Callbacks must not block; they run on the task's goroutine.
func WithOnFailure(fn func(name string, err error)) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.onFailure = append(d.onFailure, fn)
		}
	}
}

// WithOnSuccess registers a callback invoked after a task completes without error.
func WithOnSuccess(fn func(name string)) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.onSuccess = append(d.onSuccess, fn)
		}
	}
}
