package middleware

import (
	"fmt"
	"net/http"
)

// SecurityHeaders sets the response headers every page carries. It must run
// after NonceMiddleware so the CSP can allow the request's inline scripts.
func SecurityHeaders(isDev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			scriptSrc := "'self'"
			if nonce := GetNonce(r.Context()); nonce != "" {
				scriptSrc = fmt.Sprintf("'self' 'nonce-%s'", nonce)
			}
			h.Set("Content-Security-Policy", fmt.Sprintf(
				"default-src 'self'; script-src %s; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self'; frame-ancestors 'none'; base-uri 'self'",
				scriptSrc,
			))
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if !isDev {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
