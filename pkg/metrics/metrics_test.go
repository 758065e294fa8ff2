package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry/pkg/dispatch"
	"github.com/dmitrymomot/enquiry/pkg/metrics"
)

func TestDispatchCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.DispatchSucceeded("notify_operator")
	m.DispatchFailed("notify_operator", errors.New("smtp down"))
	m.DispatchFailed("notify_operator", &dispatch.PanicError{Value: "boom"})
	m.DispatchFailed("notify_operator", errors.New("smtp down again"))

	count, err := testutil.GatherAndCount(m.Registry(), "enquiry_dispatch_tasks_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "one series per result")

	body := scrape(t, m)
	assert.Contains(t, body, `enquiry_dispatch_tasks_total{result="success",task="notify_operator"} 1`)
	assert.Contains(t, body, `enquiry_dispatch_tasks_total{result="error",task="notify_operator"} 2`)
	assert.Contains(t, body, `enquiry_dispatch_tasks_total{result="panic",task="notify_operator"} 1`)
}

func TestObserveRequest(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.ObserveRequest(http.MethodPost, "/api/submit-enquiry", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/submit-enquiry", http.StatusBadRequest, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `enquiry_http_requests_total{method="POST",route="/api/submit-enquiry",status="200"} 1`)
	assert.Contains(t, body, `enquiry_http_requests_total{method="POST",route="/api/submit-enquiry",status="400"} 1`)
	assert.Contains(t, body, `enquiry_http_request_duration_seconds_count{method="POST",route="/api/submit-enquiry"} 2`)
	assert.Contains(t, body, "go_goroutines")
}

func TestTrackRunning(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.TrackRunning(dispatch.New())

	assert.Contains(t, scrape(t, m), "enquiry_dispatch_running 0")
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}
