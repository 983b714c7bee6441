package handler

import (
	"net/http"

	"github.com/deppfellow/url-summarizer/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsHandler exposes the Prometheus registry.
type MetricsHandler struct {
	Handler
	promHandler http.Handler
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	h := &MetricsHandler{Handler: NewHandler(s)}
	if s.Metrics != nil {
		h.promHandler = s.Metrics.Handler()
	}
	return h
}

func (h *MetricsHandler) ServeMetrics(c echo.Context) error {
	if h.promHandler == nil {
		return echo.ErrNotFound
	}
	h.promHandler.ServeHTTP(c.Response(), c.Request())
	return nil
}
