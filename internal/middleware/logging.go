package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/unchartedsh/site/internal/logfields"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Paths to skip logging (static assets, scrapes)
var skipLoggingPaths = []string{
	"/static/",
	"/favicon.ico",
	"/metrics",
}

// RequestLogging logs HTTP requests with method, path, status, and duration.
// Server errors log at Error so they reach Sentry when it is configured.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range skipLoggingPaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		level := slog.LevelInfo
		if rw.statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "http request",
			"method", r.Method,
			logfields.Path(r.URL.Path),
			"status", rw.statusCode,
			logfields.DurationMS(time.Since(start).Milliseconds()),
			"remote_addr", r.RemoteAddr,
		)
	})
}
