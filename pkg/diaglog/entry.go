package diaglog

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for entry timestamps (always UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Field is an extra key/value line recorded with an entry.
type Field struct {
	Key   string
	Value string
}

// Entry is a single diagnostic record.
type Entry struct {
	Timestamp time.Time
	Message   string // Prefix describing what failed, e.g. "Error sending email"
	Error     string
	Stack     string
	Fields    []Field
}

// NewEntry builds an entry for err with the current time and the caller's stack.
// A nil err produces an entry with an empty error text.
func NewEntry(message string, err error, fields ...Field) Entry {
	e := Entry{
		Timestamp: time.Now(),
		Message:   message,
		Stack:     string(debug.Stack()),
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Format renders the entry in its on-disk shape, trailing blank line included.
func (e Entry) Format() string {
	var b strings.Builder

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString("[")
	b.WriteString(ts.UTC().Format(TimestampLayout))
	b.WriteString("] ")
	if e.Message != "" {
		b.WriteString(e.Message)
		b.WriteString(": ")
	}
	b.WriteString(e.Error)
	b.WriteString("\n")

	for _, f := range e.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
	}

	b.WriteString("Stack: ")
	b.WriteString(strings.TrimRight(e.Stack, "\n"))
	b.WriteString("\n\n")

	return b.String()
}
