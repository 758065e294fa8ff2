package mailer

import (
	"errors"
	"fmt"
)

// Tags are provider-specific labels attached to a message.
// A struct{} value marks a presence-only tag.
type Tags map[string]any

// SimpleTags builds presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats name and address as "Name <address>".
// An empty name yields the bare address.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// Email is a message ready for delivery.
type Email struct {
	Headers map[string]string
	Tags    Tags
	From    string // Empty means the sender's configured default
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	To      []string
}

// Validate reports the first structural problem with the message.
func (e *Email) Validate() error {
	if e == nil || len(e.To) == 0 {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	if e.HTML == "" && e.Text == "" {
		return ErrNoContent
	}
	return nil
}

// IsSendError reports whether err came out of a failed delivery.
func IsSendError(err error) bool {
	return errors.Is(err, ErrSendFailed)
}
