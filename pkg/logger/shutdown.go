package logger

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

const defaultFlushTimeout = 2 * time.Second

// Shutdown returns a shutdown hook that flushes buffered Sentry events.
// It is a no-op when Sentry was never initialised.
func Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		timeout := defaultFlushTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if timeout > 0 {
			sentry.Flush(timeout)
		}
		return nil
	}
}
