package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/enquiry/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// serve builds an app with the given middleware and a single handler on
// GET/POST /, sends req and returns the recorder.
func serve(req *http.Request, h internal.HandlerFunc, mw ...internal.Middleware) *httptest.ResponseRecorder {
	app := internal.New(
		internal.WithMiddleware(mw...),
		internal.WithErrorHandler(jsonErrors()),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", h)
			r.POST("/", h)
		})),
	)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func ok(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}
