package handler

import (
	"net/http"

	"github.com/unchartedsh/site/internal/service"
	"github.com/unchartedsh/site/internal/ui"
	"github.com/unchartedsh/site/internal/ui/pages"
)

type HomeHandler struct {
	blogService   *service.BlogService
	basePath      string
	featuredCount int
}

func NewHomeHandler(blogService *service.BlogService, basePath string, featuredCount int) *HomeHandler {
	return &HomeHandler{
		blogService:   blogService,
		basePath:      basePath,
		featuredCount: featuredCount,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	snap, ok := snapshot(w, r, h.blogService)
	if !ok {
		return
	}

	recent := snap.RecentPosts(h.featuredCount)
	cards := make([]pages.PostCard, 0, len(recent))
	for _, p := range recent {
		cards = append(cards, postCard(snap, h.basePath, p))
	}
	ui.Render(w, r, pages.Home(cards))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	notFound(w, r)
}
