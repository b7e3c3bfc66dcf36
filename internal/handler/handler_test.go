package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unchartedsh/site/internal/config"
	"github.com/unchartedsh/site/internal/content"
	"github.com/unchartedsh/site/internal/middleware"
	"github.com/unchartedsh/site/internal/service"
)

const base = "/resources/blog"

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func post(title, date, extra string) string {
	return "---\ntitle: " + title + "\ndescription: About " + title + "\ndate: " + date + "\n" + extra + "---\n\n## Getting there\n\nTake the train.\n"
}

type fixture struct {
	root    string
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "blog/japan.md", post("Two Weeks in Japan", "2024-03-01", "tags: [asia, rail]\nauthors: [alice, ghost]\n"))
	writeFile(t, root, "blog/japan/day-1.md", post("Day 1", "2024-03-02", "order: 1\n"))
	writeFile(t, root, "blog/japan/day-2.md", post("Day 2", "2024-03-02", "order: 2\n"))
	writeFile(t, root, "blog/lisbon.md", post("Lisbon on Foot", "2023-06-10", "tags: [europe]\n"))
	writeFile(t, root, "blog/secret.md", post("Secret", "2024-05-01", "draft: true\n"))
	writeFile(t, root, "authors/alice.md", "---\nname: Alice Doe\npronouns: she/her\nbio: Rail nerd\nlinkedin: https://linkedin.com/in/alice\nmail: alice@example.com\n---\n")

	cfg := &config.Config{
		AppName:           "Uncharted",
		AppEnv:            "development",
		AppURL:            "https://uncharted.sh",
		AppTagline:        "Your AI travel agent",
		StaticPath:        filepath.Join(root, "static"),
		BlogBasePath:      base,
		BlogTitle:         "Uncharted",
		BlogDescription:   "Stories",
		BlogLocale:        "en-US",
		BlogDefaultAvatar: "/logo.png",
		BlogPostsPerPage:  1,
		BlogFeaturedCount: 1,
	}

	blogService := service.NewBlogService(content.NewLoader(root, cfg.BlogDefaultAvatar), cfg.BlogDefaultAvatar, true)
	feedService, err := service.NewFeedService(service.FeedConfig{
		Title:    cfg.BlogTitle,
		BlogURL:  cfg.BlogURL(""),
		Locale:   cfg.BlogLocale,
	})
	require.NoError(t, err)

	home := NewHomeHandler(blogService, base, cfg.BlogFeaturedCount)
	blog := NewBlogHandler(blogService, feedService, base, cfg.BlogPostsPerPage)
	seo := NewSEOHandler(blogService, service.NewSitemapService(cfg.AppURL, base), cfg.StaticPath, cfg.AppURL)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)
	mux.HandleFunc("GET "+base, blog.ListPosts)
	mux.HandleFunc("GET "+base+"/rss.xml", blog.Feed)
	mux.HandleFunc("GET "+base+"/tags", blog.ListTags)
	mux.HandleFunc("GET "+base+"/tags/{tag}", blog.ListByTag)
	mux.HandleFunc("GET "+base+"/{slug...}", blog.ShowPost)
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	return &fixture{root: root, handler: middleware.Chain(mux, middleware.Config(cfg), middleware.WithURLPath)}
}

func (f *fixture) get(t *testing.T, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestHomeShowsRecentPosts(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Your AI travel agent")
	require.Contains(t, body, "Two Weeks in Japan")
	require.NotContains(t, body, "Lisbon on Foot")
	require.NotContains(t, body, "Secret")
}

func TestListPostsPaginates(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, base)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Two Weeks in Japan")
	require.Contains(t, body, "2 subposts")
	require.NotContains(t, body, "Day 1")
	require.Contains(t, body, "Page 1 of 2")
	require.Contains(t, body, base+"?page=2")

	rec = f.get(t, base+"?page=2")
	body = rec.Body.String()
	require.Contains(t, body, "Lisbon on Foot")
	require.Contains(t, body, "2023")
	require.Contains(t, body, `rel="prev"`)

	rec = f.get(t, base+"?page=oops")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Page 1 of 2")
}

func TestShowPost(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, base+"/japan")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `<h2 id="getting-there">`)
	require.Contains(t, body, `href="#getting-there"`)
	require.Contains(t, body, "Alice Doe")
	require.Contains(t, body, "ghost")
	require.Contains(t, body, base+"/japan/day-1")
	require.Contains(t, body, base+"/tags/asia")
	require.Contains(t, body, `rel="canonical" href="https://uncharted.sh/resources/blog/japan"`)
	require.Contains(t, body, "Lisbon on Foot")
}

func TestShowPostAuthorCards(t *testing.T) {
	f := newFixture(t)

	body := f.get(t, base+"/japan").Body.String()
	require.Contains(t, body, `aria-label="Authors"`)
	require.Contains(t, body, "(she/her)")
	require.Contains(t, body, "Rail nerd")
	require.Contains(t, body, `href="mailto:alice@example.com"`)
	require.Equal(t, 1, strings.Count(body, "size-12 rounded-full"), "unregistered authors get no card")

	body = f.get(t, base+"/lisbon").Body.String()
	require.NotContains(t, body, `aria-label="Authors"`)
}

func TestShowSubpost(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, base+"/japan/day-1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Day 1")
	require.Contains(t, body, "Back to")
	require.Contains(t, body, "Two Weeks in Japan")
	require.Contains(t, body, base+"/japan/day-2")
}

func TestShowPostNotFound(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{base + "/nope", base + "/secret", base + "/japan/day-9"} {
		rec := f.get(t, target)
		require.Equal(t, http.StatusNotFound, rec.Code, target)
		require.Contains(t, rec.Body.String(), "Page not found")
	}
}

func TestTags(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, base+"/tags")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "asia")
	require.Contains(t, body, "europe")

	rec = f.get(t, base+"/tags/europe")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Lisbon on Foot")
	require.Contains(t, rec.Body.String(), "1 post")

	rec = f.get(t, base+"/tags/unknown")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedConditionalGet(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, base+"/rss.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, service.FeedContentType, rec.Header().Get("Content-Type"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rec.Body.String(), "https://uncharted.sh/resources/blog/japan")
	require.NotContains(t, rec.Body.String(), "day-1")

	rec = f.get(t, base+"/rss.xml", "If-None-Match", etag)
	require.Equal(t, http.StatusNotModified, rec.Code)
	require.Empty(t, rec.Body.Bytes())
}

func TestFeedStableUntilContentChanges(t *testing.T) {
	f := newFixture(t)

	first := f.get(t, base+"/rss.xml")
	second := f.get(t, base+"/rss.xml")
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, first.Header().Get("ETag"), second.Header().Get("ETag"))

	writeFile(t, f.root, "blog/porto.md", post("Porto by Tram", "2024-04-01", ""))
	third := f.get(t, base+"/rss.xml")
	require.Contains(t, third.Body.String(), "Porto by Tram")
	require.NotEqual(t, first.Header().Get("ETag"), third.Header().Get("ETag"))
}

func TestBrokenContentServes500(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.root, "blog/broken.md", "---\ntitle: [unclosed\n---\n")

	for _, target := range []string{"/", base, base + "/japan", base + "/rss.xml", "/sitemap.xml"} {
		rec := f.get(t, target)
		require.Equal(t, http.StatusInternalServerError, rec.Code, target)
	}
}

func TestRobotsFallbackAndStatic(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sitemap: https://uncharted.sh/sitemap.xml")

	writeFile(t, f.root, "static/robots.txt", "User-agent: *\nDisallow: /private\n")
	rec = f.get(t, "/robots.txt")
	require.Contains(t, rec.Body.String(), "Disallow: /private")
}

func TestSitemap(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "<loc>https://uncharted.sh/resources/blog/japan/day-2</loc>")
	require.Contains(t, body, "<loc>https://uncharted.sh/resources/blog/tags/europe</loc>")
	require.NotContains(t, body, "secret")
}

func TestNotFoundFallback(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/nowhere")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Page not found")
}
