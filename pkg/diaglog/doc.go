// Package diaglog appends diagnostic entries to a local, append-only text file.
//
// Each entry is a small line-oriented block followed by a blank line:
//
//	[2026-10-18T10:00:00.000Z] Error sending email: dial tcp: i/o timeout
//	Stack: goroutine 42 [running]:
//	...
//
// The file is a write-only sink for post-hoc inspection; nothing in the
// service reads it back. Appends are serialised inside the process and each
// entry is written with a single write on an O_APPEND descriptor.
package diaglog
