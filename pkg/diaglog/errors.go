package diaglog

import "errors"

var (
	// ErrNoPath indicates the writer was created without a file path.
	ErrNoPath = errors.New("diaglog: file path is required")

	// ErrWriteFailed indicates the entry could not be appended.
	ErrWriteFailed = errors.New("diaglog: failed to append entry")
)
