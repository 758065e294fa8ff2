package dispatch

import (
	"errors"
	"fmt"
)

// ErrShutdownTimeout is returned when Shutdown gives up waiting for running tasks.
var ErrShutdownTimeout = errors.New("dispatch: shutdown timed out waiting for background tasks")

// PanicError represents a panic recovered inside a task.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace at the point of recovery
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError returns true if the error is a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
