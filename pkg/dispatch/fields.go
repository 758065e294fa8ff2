package dispatch

import (
	"context"

	"github.com/dmitrymomot/enquiry/pkg/diaglog"
)

type fieldsKey struct{}

// WithFields attaches diagnostic fields to ctx.
// They are copied into the diagnostic entry if the task started with ctx fails.
func WithFields(ctx context.Context, fields ...diaglog.Field) context.Context {
	existing := fieldsFromContext(ctx)
	merged := make([]diaglog.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fieldsFromContext(ctx context.Context) []diaglog.Field {
	if v, ok := ctx.Value(fieldsKey{}).([]diaglog.Field); ok {
		return v
	}
	return nil
}
