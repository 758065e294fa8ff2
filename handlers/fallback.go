package handlers

import (
	"github.com/dmitrymomot/enquiry/internal"
)

// NotFound renders unknown routes as a JSON 404.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound("")
}

// MethodNotAllowed renders a JSON 405.
func MethodNotAllowed(c internal.Context) error {
	return internal.ErrMethodNotAllowed("")
}
