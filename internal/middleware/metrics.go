package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/deppfellow/url-summarizer/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// unmatchedRoute labels requests that matched no route, so arbitrary
// paths cannot grow label cardinality.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records request count and latency by route template.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

func (mm *MetricsMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if mm.metrics == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			route := c.Path()
			if err != nil {
				status = ToHTTPError(err).Status
				var echoErr *echo.HTTPError
				if errors.As(err, &echoErr) && echoErr.Code == http.StatusNotFound {
					route = unmatchedRoute
				}
			}
			if route == "" {
				route = unmatchedRoute
			}

			method := c.Request().Method
			mm.metrics.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			mm.metrics.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
