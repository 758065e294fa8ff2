package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry/internal"
	"github.com/dmitrymomot/enquiry/middlewares"
)

type observation struct {
	method string
	route  string
	status int
}

type fakeObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{method, route, status})
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		path    string
		handler internal.HandlerFunc
		want    observation
	}{
		{
			name:    "success",
			method:  http.MethodPost,
			path:    "/",
			handler: ok,
			want:    observation{http.MethodPost, "/", http.StatusOK},
		},
		{
			name:   "http error",
			method: http.MethodGet,
			path:   "/",
			handler: func(internal.Context) error {
				return internal.ErrBadRequest("nope")
			},
			want: observation{http.MethodGet, "/", http.StatusBadRequest},
		},
		{
			name:   "plain error",
			method: http.MethodGet,
			path:   "/",
			handler: func(internal.Context) error {
				return assert.AnError
			},
			want: observation{http.MethodGet, "/", http.StatusInternalServerError},
		},
		{
			name:    "unmatched route",
			method:  http.MethodGet,
			path:    "/missing",
			handler: ok,
			want:    observation{http.MethodGet, "unmatched", http.StatusNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := &fakeObserver{}
			serve(httptest.NewRequest(tt.method, tt.path, nil), tt.handler, middlewares.Metrics(o))

			require.Len(t, o.obs, 1)
			assert.Equal(t, tt.want, o.obs[0])
		})
	}
}
