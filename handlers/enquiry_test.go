package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry/handlers"
	"github.com/dmitrymomot/enquiry/internal"
	"github.com/dmitrymomot/enquiry/middlewares"
	"github.com/dmitrymomot/enquiry/pkg/diaglog"
	"github.com/dmitrymomot/enquiry/pkg/dispatch"
	"github.com/dmitrymomot/enquiry/pkg/mailer"
	"github.com/dmitrymomot/enquiry/pkg/notify"
)

// recordingDispatcher stores tasks instead of running them.
type recordingDispatcher struct {
	mu    sync.Mutex
	ctxs  []context.Context
	names []string
	tasks []dispatch.Task
}

func (d *recordingDispatcher) Go(ctx context.Context, name string, task dispatch.Task) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctxs = append(d.ctxs, ctx)
	d.names = append(d.names, name)
	d.tasks = append(d.tasks, task)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

type notifierFunc func(ctx context.Context, e notify.Enquiry) error

func (f notifierFunc) Notify(ctx context.Context, e notify.Enquiry) error { return f(ctx, e) }

func newApp(h internal.Handler) *internal.App {
	return internal.New(
		internal.WithMiddleware(middlewares.RequestID()),
		internal.WithErrorHandler(middlewares.JSONErrorHandler()),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHandlers(h),
	)
}

func post(app http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, handlers.SubmitEnquiryPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

const validBody = `{"name":"Ada Lovelace","email":"ada@example.com","message":"I would like a quote for a new site."}`

func TestSubmitEnquiry_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{"missing name", `{"email":"a@b.co","message":"hello there friend"}`, http.StatusBadRequest, `{"error":"Please provide name, email, and message."}`},
		{"missing email", `{"name":"Ada","message":"hello there friend"}`, http.StatusBadRequest, `{"error":"Please provide name, email, and message."}`},
		{"missing message", `{"name":"Ada","email":"a@b.co"}`, http.StatusBadRequest, `{"error":"Please provide name, email, and message."}`},
		{"whitespace only", `{"name":"  ","email":"a@b.co","message":"hi"}`, http.StatusBadRequest, `{"error":"Please provide name, email, and message."}`},
		{"empty object", `{}`, http.StatusBadRequest, `{"error":"Please provide name, email, and message."}`},
		{"empty body", ``, http.StatusBadRequest, `{"error":"Please provide name, email, and message."}`},
		{"malformed json", `{"name":`, http.StatusBadRequest, `{"error":"Invalid JSON body."}`},
		{"non-string field", `{"name":123,"email":"ada@example.com","message":"Build me a site"}`, http.StatusBadRequest, `{"error":"Invalid JSON body."}`},
		{"null field", `{"name":null,"email":"ada@example.com","message":"Build me a site"}`, http.StatusBadRequest, `{"error":"` + handlers.MsgMissingFields + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &recordingDispatcher{}
			called := false
			h := handlers.NewEnquiryHandler(d, notifierFunc(func(context.Context, notify.Enquiry) error {
				called = true
				return nil
			}))

			w := post(newApp(h), tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Zero(t, d.count(), "nothing may be scheduled for a rejected request")
			assert.False(t, called)
		})
	}
}

func TestSubmitEnquiry_Accepted(t *testing.T) {
	t.Parallel()

	d := &recordingDispatcher{}
	var got notify.Enquiry
	received := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	h := handlers.NewEnquiryHandler(d,
		notifierFunc(func(_ context.Context, e notify.Enquiry) error {
			got = e
			return nil
		}),
		handlers.WithIDGenerator(func() string { return "enq-1" }),
		handlers.WithClock(func() time.Time { return received }),
	)

	w := post(newApp(h), `{"name":"  Ada ","email":"ada@example.com ","message":" Need a site. "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Enquiry submitted successfully!"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	require.Equal(t, 1, d.count())
	assert.Equal(t, "notify_operator", d.names[0])

	// Detached context still carries request values and diagnostic fields.
	assert.Equal(t, w.Header().Get("X-Request-ID"), middlewares.RequestIDFromContext(d.ctxs[0]))

	require.NoError(t, d.tasks[0](context.Background()))
	assert.Equal(t, notify.Enquiry{
		ID:         "enq-1",
		Name:       "Ada",
		Email:      "ada@example.com",
		Message:    "Need a site.",
		ReceivedAt: received,
	}, got)
}

func TestSubmitEnquiry_RespondsBeforeDelivery(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	d := dispatch.New()
	h := handlers.NewEnquiryHandler(d, notifierFunc(func(context.Context, notify.Enquiry) error {
		close(started)
		<-release
		return nil
	}))

	w := post(newApp(h), validBody)
	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("notification was not dispatched")
	}
	assert.EqualValues(t, 1, d.Stats().Running)

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))
	assert.EqualValues(t, 1, d.Stats().Succeeded)
}

func TestSubmitEnquiry_FailureIsLogged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "email_errors.log")
	diag, err := diaglog.New(path)
	require.NoError(t, err)

	d := dispatch.New(dispatch.WithDiagLog(diag, "Error sending email"))

	var attempts atomic.Int32
	var subject atomic.Value
	sender := mailer.SenderFunc(func(_ context.Context, email *mailer.Email) error {
		attempts.Add(1)
		subject.Store(email.Subject)
		return errors.New("535 authentication failed")
	})
	n, err := notify.New(func(context.Context) (mailer.Sender, error) { return sender, nil },
		notify.Config{To: []string{"owner@example.com"}},
	)
	require.NoError(t, err)

	ids := []string{"enq-a", "enq-b"}
	var idx int
	var idMu sync.Mutex
	h := handlers.NewEnquiryHandler(d, n, handlers.WithIDGenerator(func() string {
		idMu.Lock()
		defer idMu.Unlock()
		id := ids[idx]
		idx++
		return id
	}))
	app := newApp(h)

	assert.Equal(t, http.StatusOK, post(app, validBody).Code)
	assert.Equal(t, http.StatusOK, post(app, validBody).Code)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	log := string(data)

	assert.Equal(t, 2, strings.Count(log, "] Error sending email: "))
	assert.Contains(t, log, "535 authentication failed")
	assert.Contains(t, log, "Enquiry: enq-a\n")
	assert.Contains(t, log, "Enquiry: enq-b\n")
	assert.Contains(t, log, "From: ada@example.com\n")
	assert.Contains(t, log, "Stack: ")

	// One attempt per submission, no retry.
	assert.EqualValues(t, 2, attempts.Load())
	assert.Equal(t, "New Project Enquiry from Ada Lovelace", subject.Load())
	assert.EqualValues(t, 2, d.Stats().Failed)
}

func TestFallbackHandlers(t *testing.T) {
	t.Parallel()

	app := newApp(handlers.NewEnquiryHandler(&recordingDispatcher{}, notifierFunc(nil)))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, handlers.SubmitEnquiryPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())
}
