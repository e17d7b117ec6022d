package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// Provider overrides the global tracer provider
	Provider trace.TracerProvider
}

// Tracing starts a server span per request through otelgin
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	var opts []otelgin.Option
	if cfg.Provider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.Provider))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanAnnotator runs inside the otelgin span and enriches it once the
// handler chain has finished. Register it right after Tracing.
func SpanAnnotator() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if claims := GetJWTClaims(c); claims != nil {
			span.SetAttributes(attribute.String("enduser.id", claims.Subject))
		}
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
