package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotPointer is returned when SanitizeStruct receives a non-pointer or a pointer to a non-struct.
var ErrNotPointer = errors.New("sanitizer: expected pointer to struct")

const tagName = "sanitize"

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// SanitizeStruct applies the rules from `sanitize` tags to string fields in place.
// Nested structs and pointers to structs are walked recursively.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotPointer
	}
	return sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		switch {
		case fv.Kind() == reflect.Struct:
			if err := sanitizeValue(fv); err != nil {
				return err
			}
			continue
		case fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Kind() == reflect.Struct:
			if err := sanitizeValue(fv.Elem()); err != nil {
				return err
			}
			continue
		}

		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" || fv.Kind() != reflect.String {
			continue
		}

		out, err := apply(fv.String(), tag)
		if err != nil {
			return fmt.Errorf("sanitizer: field %s: %w", field.Name, err)
		}
		fv.SetString(out)
	}
	return nil
}

func apply(s, tag string) (string, error) {
	for rule := range strings.SplitSeq(tag, ",") {
		switch strings.TrimSpace(rule) {
		case "trim":
			s = Trim(s)
		case "lower":
			s = strings.ToLower(s)
		case "strip_html":
			s = StripHTML(s)
		case "escape_html":
			s = EscapeHTML(s)
		case "":
		default:
			return "", fmt.Errorf("unknown rule %q", rule)
		}
	}
	return s, nil
}
