package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes every HTML element and returns plain text.
// Entities produced by the policy are decoded, so "a & b" survives unchanged.
func StripHTML(s string) string {
	if s == "" {
		return s
	}
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// EscapeHTML escapes <, >, &, ' and " so s renders as literal text.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
