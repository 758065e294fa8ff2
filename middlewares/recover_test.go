package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry/internal"
	"github.com/dmitrymomot/enquiry/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("converts panic to PanicError", func(t *testing.T) {
		t.Parallel()

		var got error
		mw := middlewares.Recover()
		h := mw(func(internal.Context) error { panic("kaboom") })

		app := internal.New(
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.NoContent(http.StatusInternalServerError)
			}),
			internal.WithHandlers(routes(func(r internal.Router) { r.GET("/", h) })),
		)
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		assert.Equal(t, "kaboom", pe.Value)
		assert.Equal(t, "panic: kaboom", pe.Error())
		assert.Contains(t, string(pe.Stack), "goroutine")
		assert.Equal(t, http.MethodGet, pe.Method)
		assert.Equal(t, "/", pe.Path)
	})

	t.Run("renders json 500 without leaking panic", func(t *testing.T) {
		t.Parallel()

		w := serve(httptest.NewRequest(http.MethodGet, "/", nil),
			func(internal.Context) error { panic("secret detail") },
			middlewares.Recover(),
		)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	})

	t.Run("stack disabled", func(t *testing.T) {
		t.Parallel()

		var got error
		h := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())(func(internal.Context) error {
			panic(errors.New("wrapped"))
		})
		app := internal.New(
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.NoContent(http.StatusInternalServerError)
			}),
			internal.WithHandlers(routes(func(r internal.Router) { r.GET("/", h) })),
		)
		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		assert.Nil(t, pe.Stack)
		assert.EqualError(t, errors.Unwrap(pe), "wrapped")
	})

	t.Run("passes through without panic", func(t *testing.T) {
		t.Parallel()

		w := serve(httptest.NewRequest(http.MethodGet, "/", nil), ok, middlewares.Recover())
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPanicErrorHelpers(t *testing.T) {
	t.Parallel()

	assert.False(t, middlewares.IsPanicError(errors.New("x")))
	assert.True(t, middlewares.IsPanicError(&middlewares.PanicError{Value: 1}))

	_, ok := middlewares.AsPanicError(errors.New("x"))
	assert.False(t, ok)
}
