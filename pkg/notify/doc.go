// Package notify turns a received enquiry into an email to the site owner.
//
// A [Notifier] builds its mail transport through a [SenderFactory] on every
// call, so a misconfigured or unreachable provider surfaces as an error from
// [Notifier.Notify] rather than at startup. The message body is rendered from
// the embedded templates/enquiry.md; user-supplied values are HTML-escaped
// before rendering.
//
// Notify is meant to run inside a background task; it never retries.
package notify
