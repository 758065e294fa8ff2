// Package client implements the submission side of the enquiry form as a
// headless state machine: live field validation, a non-reentrant submit and
// success or error banners. A UI layer renders Snapshot values it receives
// through OnChange.
//
//	form := client.NewForm(client.WithEndpoint("https://api.example.com/api/submit-enquiry"))
//	form.OnChange(render)
//	form.Input(client.FieldName, "Ada")
//	form.Input(client.FieldEmail, "ada@example.com")
//	form.Input(client.FieldMessage, "Interested in your backend work.")
//	outcome, err := form.Submit(ctx)
//
// Success banners disappear after five seconds; error banners stay until
// replaced.
package client
