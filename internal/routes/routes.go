package routes

import (
	"net/http"

	"github.com/unchartedsh/site/internal/app"
	"github.com/unchartedsh/site/internal/handler"
	"github.com/unchartedsh/site/internal/metrics"
	"github.com/unchartedsh/site/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	cfg := app.Cfg
	base := cfg.BlogBasePath

	// Handlers
	home := handler.NewHomeHandler(app.BlogService, base, cfg.BlogFeaturedCount)
	seo := handler.NewSEOHandler(app.BlogService, app.SitemapService, cfg.StaticPath, cfg.AppURL)
	blog := handler.NewBlogHandler(app.BlogService, app.FeedService, base, cfg.BlogPostsPerPage)

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))))

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Home. A blog mounted at the site root takes over the home page.
	if base == "" {
		mux.HandleFunc("GET /{$}", blog.ListPosts)
	} else {
		mux.HandleFunc("GET /{$}", home.HomePage)
		mux.HandleFunc("GET "+base+"/{$}", blog.ListPosts)
		mux.HandleFunc("GET "+base, blog.ListPosts)
	}

	// Blog
	mux.HandleFunc("GET "+base+"/rss.xml", blog.Feed)
	mux.HandleFunc("GET "+base+"/tags", blog.ListTags)
	mux.HandleFunc("GET "+base+"/tags/{tag}", blog.ListByTag)
	mux.HandleFunc("GET "+base+"/{slug...}", blog.ShowPost)

	// Metrics
	if app.Registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(app.Registry))
	}

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(cfg),    // Config must be first (pages read it from the context)
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders(cfg.IsDevelopment()),
		middleware.RequestLogging,
		middleware.WithURLPath,
	)
}
