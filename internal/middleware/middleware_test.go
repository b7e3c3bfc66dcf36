package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/unchartedsh/site/internal/config"
	"github.com/unchartedsh/site/internal/ctxkeys"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }),
		mark("first"), mark("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestNonceAndSecurityHeaders(t *testing.T) {
	var templNonce string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		templNonce = templ.GetNonce(r.Context())
	}), NonceMiddleware, SecurityHeaders(false))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	require.Len(t, templNonce, 24)
	csp := rec.Header().Get("Content-Security-Policy")
	require.True(t, strings.Contains(csp, "'nonce-"+templNonce+"'"), csp)
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestConfigAndURLPath(t *testing.T) {
	cfg := &config.Config{AppName: "Uncharted", S3SecretKey: "secret"}

	var got *config.Config
	var path string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Config(r.Context())
		path = ctxkeys.URLPath(r.Context())
	}), WithURLPath, Config(cfg))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/resources/blog/tags", nil))
	require.Equal(t, "Uncharted", got.AppName)
	require.Empty(t, got.S3SecretKey)
	require.Equal(t, "/resources/blog/tags", path)
}

func TestRequestLoggingKeepsStatus(t *testing.T) {
	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
