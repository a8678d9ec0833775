package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-ID"

type ctxKey struct{}

// CorrelationKey is the context key under which the request's correlation
// ID is stored. Exposed so the logging handler can read it directly.
var CorrelationKey ctxKey

// CorrelationID tags every request with a correlation ID: the caller's, or
// a fresh one when the header is absent. The ID is echoed in the response
// header and placed on the request context for downstream logging.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlationHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(correlationHeader, id)
		ctx := WithCorrelationID(r.Context(), id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		slog.InfoContext(ctx, "request completed",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// GetCorrelationID returns the correlation ID on ctx, or "unknown" outside
// of a request scope.
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationKey).(string); ok {
		return id
	}
	return "unknown"
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationKey, id)
}
