package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/deppfellow/lightbnb/internal/errs"
)

var httpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "lightbnb_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// MetricsMiddleware records request latency per route into prometheus.
type MetricsMiddleware struct {
	requests *prometheus.HistogramVec
}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{requests: httpRequestDuration}
}

func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError
				switch {
				case errors.As(err, &httpErr):
					status = httpErr.Status
				case errors.As(err, &echoErr):
					status = echoErr.Code
				default:
					status = 500
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.requests.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}
