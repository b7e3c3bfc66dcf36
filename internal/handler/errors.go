package handler

import (
	"net/http"

	"github.com/unchartedsh/site/internal/blog"
	"github.com/unchartedsh/site/internal/config"
	"github.com/unchartedsh/site/internal/ctxkeys"
	"github.com/unchartedsh/site/internal/service"
	"github.com/unchartedsh/site/internal/ui"
	"github.com/unchartedsh/site/internal/ui/pages"
)

// snapshot fetches the current content snapshot and answers with the error
// page when it cannot be built. The failure is logged by the service.
func snapshot(w http.ResponseWriter, r *http.Request, s *service.BlogService) (*blog.Snapshot, bool) {
	snap, err := s.Snapshot()
	if err != nil {
		serverError(w, r)
		return nil, false
	}
	return snap, true
}

func notFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}

func serverError(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusInternalServerError, pages.ServerError())
}

func siteConfig(r *http.Request) *config.Config {
	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		return cfg
	}
	return &config.Config{}
}
