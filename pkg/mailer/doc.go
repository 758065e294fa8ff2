// Package mailer composes and delivers transactional emails.
//
// Delivery is delegated to a [Sender]; the smtp and resend subpackages provide
// implementations. Bodies are rendered by a [Renderer] from markdown templates
// with YAML frontmatter, wrapped in an HTML layout:
//
//	---
//	Subject: New Project Enquiry from {{.Name}}
//	Layout: base.html
//	---
//
//	**From:** {{.Name}} <{{.Email}}>
//
//	{{.Message}}
//
//	[!button|Reply to {{.Name}}](mailto:{{.Email}})
//
// The frontmatter Subject is itself a template executed with the same data.
// The `[!button|Label](URL)` syntax renders a styled call-to-action link.
//
// Values interpolated into templates are NOT escaped by the markdown step;
// callers escape untrusted input before rendering.
//
// Typical use:
//
//	r := mailer.NewRenderer(templatesFS)
//	m := mailer.New(sender, r, mailer.Config{DefaultLayout: "base.html"})
//	err := m.Send(ctx, mailer.SendParams{
//	    To:       []string{"owner@example.com"},
//	    ReplyTo:  "ada@example.com",
//	    Template: "enquiry.md",
//	    Data:     data,
//	})
//
// Errors are sentinel values ([ErrNoRecipient], [ErrTemplateNotFound],
// [ErrSendFailed], ...) joined with the underlying cause.
package mailer
