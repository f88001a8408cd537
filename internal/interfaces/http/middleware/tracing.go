package middleware

import (
	"net/http"

	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request. Health probes are not traced.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/health" && r.URL.Path != "/ready"
	}))
}

// TraceAttributes tags the span started by Tracing with the request and
// tenant ids. It runs after the tenant middleware.
func TraceAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if requestID := logger.GetRequestID(c.Request.Context()); requestID != "" {
			telemetry.SetAttributes(span, "request_id", requestID)
		}
		if tenantID, ok := GetTenantID(c); ok {
			telemetry.SetAttributes(span, telemetry.SpanAttrTenantID, tenantID.String())
		}
		c.Next()
	}
}
