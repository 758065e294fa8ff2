package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Enquiry struct {
//	    notifier *notify.Notifier
//	}
//
//	func (h *Enquiry) Routes(r internal.Router) {
//	    r.POST("/api/submit-enquiry", h.submit)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect or modify the request, short-circuit processing,
// or wrap the response.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
