package handler

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/unchartedsh/site/internal/logfields"
	"github.com/unchartedsh/site/internal/service"
)

type SEOHandler struct {
	blogService    *service.BlogService
	sitemapService *service.SitemapService
	staticPath     string
	baseURL        string
}

func NewSEOHandler(blogService *service.BlogService, sitemapService *service.SitemapService, staticPath, baseURL string) *SEOHandler {
	return &SEOHandler{
		blogService:    blogService,
		sitemapService: sitemapService,
		staticPath:     staticPath,
		baseURL:        baseURL,
	}
}

// Robots serves the robots.txt file
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	content, err := os.ReadFile(filepath.Join(h.staticPath, "robots.txt"))
	if err != nil {
		content = []byte("User-agent: *\nAllow: /\nSitemap: " + h.baseURL + "/" + service.SitemapPath + "\n")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(content)
}

// Sitemap generates and serves the sitemap.xml dynamically
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	snap, ok := snapshot(w, r, h.blogService)
	if !ok {
		return
	}

	body, err := h.sitemapService.Generate(snap, snap.BuiltAt)
	if err != nil {
		slog.Error("generate sitemap failed", logfields.Error(err))
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", service.SitemapContentType)
	_, _ = w.Write(body)
}
