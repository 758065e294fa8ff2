// Package sanitizer cleans user-supplied strings before they are validated or
// embedded into outgoing messages.
//
// Struct fields opt in through the `sanitize` tag:
//
//	type Payload struct {
//	    Name    string `json:"name" sanitize:"trim"`
//	    Message string `json:"message" sanitize:"trim,strip_html"`
//	}
//
//	if err := sanitizer.SanitizeStruct(&p); err != nil { ... }
//
// Supported rules: trim, lower, strip_html.
package sanitizer
