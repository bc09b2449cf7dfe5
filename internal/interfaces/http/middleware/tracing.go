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
}

// TracingWithConfig returns otelgin followed by a span enricher. Register it
// with r.Use(TracingWithConfig(cfg)...). A disabled config yields an empty chain.
func TracingWithConfig(cfg TracingConfig) gin.HandlersChain {
	if !cfg.Enabled {
		return nil
	}
	return gin.HandlersChain{otelgin.Middleware(cfg.ServiceName), enrichSpan}
}

// enrichSpan runs inside the otelgin span. After the handler chain it adds the
// request id and authenticated user and marks 5xx responses as errors.
func enrichSpan(c *gin.Context) {
	c.Next()

	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}
	if id := GetRequestID(c); id != "" {
		span.SetAttributes(attribute.String("request_id", id))
	}
	if uid := c.GetString(UserIDKey); uid != "" {
		span.SetAttributes(attribute.String("user_id", uid))
	}
	if status := c.Writer.Status(); status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
