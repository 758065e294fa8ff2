package notify

import "errors"

var (
	ErrNoRecipient  = errors.New("notify: no recipient configured")
	ErrNoFactory    = errors.New("notify: sender factory is required")
	ErrTransport    = errors.New("notify: failed to build mail transport")
	ErrInvalidInput = errors.New("notify: enquiry is missing required fields")
)
