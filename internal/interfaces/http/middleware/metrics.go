// Package middleware provides the HTTP middleware of the posting API.
package middleware

import (
	"time"

	"github.com/erp/posting/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// httpMetrics holds the instruments behind HTTPMetrics.
type httpMetrics struct {
	requests *telemetry.Counter
	latency  *telemetry.Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (m httpMetrics, err error) {
	if m.requests, err = telemetry.NewCounter(meter,
		"http_server_request_total", "Total number of HTTP requests", "{request}"); err != nil {
		return m, err
	}
	if m.latency, err = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	}); err != nil {
		return m, err
	}
	m.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"))
	return m, err
}

// record reports a finished request. Latency is keyed by route only; the
// counter also carries status and tenant.
func (m httpMetrics) record(c *gin.Context, took time.Duration) {
	ctx := c.Request.Context()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	method := telemetry.AttrHTTPMethod.String(c.Request.Method)
	path := telemetry.AttrHTTPRoute.String(route)
	m.latency.RecordDuration(ctx, took, method, path)

	attrs := []attribute.KeyValue{method, path, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status())}
	if tenantID, ok := GetTenantID(c); ok {
		attrs = append(attrs, telemetry.AttrTenantID.String(tenantID.String()))
	}
	m.requests.Inc(ctx, attrs...)
}

// HTTPMetrics counts and times requests per route. Without a meter, or if
// the instruments cannot be created, it only calls c.Next.
func HTTPMetrics(meter metric.Meter, log *zap.Logger) gin.HandlerFunc {
	next := func(c *gin.Context) { c.Next() }
	if meter == nil {
		return next
	}
	m, err := newHTTPMetrics(meter)
	if err != nil {
		if log != nil {
			log.Warn("http metrics disabled", zap.Error(err))
		}
		return next
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		m.inFlight.Add(ctx, 1)
		defer m.inFlight.Add(ctx, -1)

		start := time.Now()
		c.Next()
		m.record(c, time.Since(start))
	}
}
