package enquiry

import (
	"context"
	"net"

	"github.com/dmitrymomot/enquiry/internal"
)

// RunOption configures the server runtime.
type RunOption = internal.RunOption

// Listener serves on an existing listener instead of the configured address.
func Listener(ln net.Listener) RunOption {
	return internal.Listener(ln)
}

// WithContext sets a base context; cancelling it triggers graceful shutdown.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// StartupHook registers a function that runs before the server accepts connections.
// A failing hook aborts Run.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function. Hooks run after the HTTP server
// has drained and after in-flight notifications were awaited.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}
