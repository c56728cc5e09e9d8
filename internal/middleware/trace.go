package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/pkg/clientip"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID attaches a request-scoped child of log carrying the trace id and
// client address. An incoming X-Trace-ID is reused only when it is a UUID.
func TraceID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := incomingTraceID(r)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			l := log.Child()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID).Str("client_ip", clientip.RealClientIP(r))
			})

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
		})
	}
}

// incomingTraceID returns the caller's trace id in canonical form, or ""
// when absent or not a UUID.
func incomingTraceID(r *http.Request) string {
	raw := r.Header.Get(TraceIDHeader)
	if raw == "" || len(raw) > 36 {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return id.String()
}

// RequestLogger logs one line per request with the request-scoped logger.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", status(ww)).
			Dur("duration", time.Since(start)).
			Int("size", ww.BytesWritten()).
			Send()
	})
}
