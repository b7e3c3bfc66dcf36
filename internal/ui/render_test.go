package ui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

func TestClassMergesConflicts(t *testing.T) {
	require.Equal(t, "rounded p-6", Class("rounded p-4", "p-6"))
}

func TestRenderStatus(t *testing.T) {
	ok := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>ok</p>")
		return err
	})
	rec := httptest.NewRecorder()
	RenderStatus(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, ok)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "<p>ok</p>", rec.Body.String())

	broken := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<p>partial")
		return errors.New("boom")
	})
	rec = httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), broken)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "partial")
}
