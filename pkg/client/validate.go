package client

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Field names a form input.
type Field string

// Form fields.
const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists every validated field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Validation messages.
const (
	MsgNameRequired    = "Please share your name."
	MsgEmailInvalid    = "Provide a valid email address."
	MsgMessageTooShort = "Add more details so I can help."
)

const (
	minNameLength    = 2
	minMessageLength = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validators maps each field to a pure check returning "" when valid.
var validators = map[Field]func(string) string{
	FieldName: func(v string) string {
		if textLength(v) < minNameLength {
			return MsgNameRequired
		}
		return ""
	},
	FieldEmail: func(v string) string {
		if !emailPattern.MatchString(strings.TrimSpace(v)) {
			return MsgEmailInvalid
		}
		return ""
	},
	FieldMessage: func(v string) string {
		if textLength(v) < minMessageLength {
			return MsgMessageTooShort
		}
		return ""
	},
}

// textLength counts characters of the trimmed, NFC-normalised value, so a
// decomposed "é" counts once.
func textLength(v string) int {
	return utf8.RuneCountInString(norm.NFC.String(strings.TrimSpace(v)))
}

// ValidationResult holds one message per field; "" means valid.
type ValidationResult map[Field]string

// Valid reports whether every field passed.
func (r ValidationResult) Valid() bool {
	for _, msg := range r {
		if msg != "" {
			return false
		}
	}
	return true
}

// IsKnown reports whether f is a validated field.
func IsKnown(f Field) bool {
	_, ok := validators[f]
	return ok
}

// Validate checks a single field. Unknown fields are always valid.
func Validate(f Field, value string) string {
	fn, ok := validators[f]
	if !ok {
		return ""
	}
	return fn(value)
}

// ValidateAll checks every known field; missing values count as empty.
func ValidateAll(values map[Field]string) ValidationResult {
	res := make(ValidationResult, len(validators))
	for _, f := range Fields {
		res[f] = Validate(f, values[f])
	}
	return res
}
