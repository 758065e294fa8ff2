package handlers

import (
	"net/http"

	"github.com/dmitrymomot/enquiry/internal"
)

// DefaultMetricsPath is where the scrape endpoint is served.
const DefaultMetricsPath = "/metrics"

// MetricsHandler exposes a Prometheus scrape endpoint.
type MetricsHandler struct {
	path    string
	handler http.Handler
}

// NewMetricsHandler serves h on path, or DefaultMetricsPath when path is empty.
func NewMetricsHandler(path string, h http.Handler) *MetricsHandler {
	if path == "" {
		path = DefaultMetricsPath
	}
	return &MetricsHandler{path: path, handler: h}
}

// Routes implements internal.Handler.
func (h *MetricsHandler) Routes(r internal.Router) {
	r.GET(h.path, func(c internal.Context) error {
		h.handler.ServeHTTP(c.Response(), c.Request())
		return nil
	})
}
