// Package handlers contains the HTTP handlers of the enquiry service.
//
// EnquiryHandler serves POST /api/submit-enquiry. It checks that name, email
// and message are present, acknowledges the request straight away and hands
// the notification to a background dispatcher. The caller never learns
// whether the email was delivered.
//
//	h := handlers.NewEnquiryHandler(dispatcher, notifier)
//	app := internal.New(internal.WithHandlers(h))
package handlers
