package client

import "errors"

var (
	// ErrValidation means at least one field failed validation; no request was sent.
	ErrValidation = errors.New("client: form has invalid fields")
	// ErrSubmitInFlight means another submit on the same form has not finished.
	ErrSubmitInFlight = errors.New("client: submit already in progress")
	// ErrRequestFailed wraps transport and response decoding failures.
	ErrRequestFailed = errors.New("client: request failed")
)
