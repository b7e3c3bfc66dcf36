package service

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/unchartedsh/site/internal/blog"
	"github.com/unchartedsh/site/internal/model"
)

const (
	SitemapPath        = "sitemap.xml"
	SitemapContentType = "application/xml; charset=utf-8"
	sitemapNamespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	lastModLayout      = "2006-01-02"
)

// publicRoutes defines the static public routes that should be included in the sitemap
// Blog routes are relative to the blog base path.
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
	Blog       bool
}{
	{"/", "1.0", "daily", false},
	{"", "0.8", "daily", true},
	{"/tags", "0.5", "weekly", true},
}

type SitemapService struct {
	baseURL  string
	basePath string
}

// NewSitemapService creates a new sitemap service
func NewSitemapService(baseURL, blogBasePath string) *SitemapService {
	return &SitemapService{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		basePath: blogBasePath,
	}
}

// Generate renders a sitemap covering static routes, every published post
// and sub-post, and one page per tag.
func (s *SitemapService) Generate(snap *blog.Snapshot, now time.Time) ([]byte, error) {
	sitemap := s.Build(snap, now)

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), output...), nil
}

func (s *SitemapService) Build(snap *blog.Snapshot, now time.Time) model.Sitemap {
	today := now.Format(lastModLayout)
	sitemap := model.Sitemap{
		XMLNS: sitemapNamespace,
		URLs:  []model.SitemapURL{},
	}

	for _, route := range publicRoutes {
		loc := s.baseURL + route.Path
		if route.Blog {
			loc = s.baseURL + s.basePath + route.Path
		}
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        loc,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	for _, post := range snap.All() {
		lastMod := today
		if !post.Date.IsZero() {
			lastMod = post.Date.Format(lastModLayout)
		}
		priority := "0.7"
		if post.IsSubpost() {
			priority = "0.6"
		}
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + s.basePath + "/" + post.Slug,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   priority,
		})
	}

	for _, tc := range snap.TagCounts() {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + s.basePath + "/tags/" + url.PathEscape(tc.Tag),
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.5",
		})
	}

	return sitemap
}
