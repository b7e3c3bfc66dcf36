package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/unchartedsh/site/internal/blog"
	"github.com/unchartedsh/site/internal/logfields"
	"github.com/unchartedsh/site/internal/model"
	"github.com/unchartedsh/site/internal/service"
	"github.com/unchartedsh/site/internal/ui"
	"github.com/unchartedsh/site/internal/ui/pages"
)

type BlogHandler struct {
	blogService *service.BlogService
	feedService *service.FeedService
	basePath    string
	perPage     int
}

func NewBlogHandler(blogService *service.BlogService, feedService *service.FeedService, basePath string, perPage int) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		feedService: feedService,
		basePath:    basePath,
		perPage:     perPage,
	}
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	snap, ok := snapshot(w, r, h.blogService)
	if !ok {
		return
	}

	number, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page := blog.Paginate(snap.TopLevelPosts(), number, h.perPage)

	cfg := siteConfig(r)
	view := pages.ListPage{
		Heading:     cfg.BlogTitle + " Blog",
		Description: cfg.BlogDescription,
		Years:       yearCards(snap, h.basePath, page.Posts),
		Number:      page.Number,
		TotalPages:  page.TotalPages,
	}
	if page.HasPrev {
		view.PrevHref = h.pageHref(page.Number - 1)
	}
	if page.HasNext {
		view.NextHref = h.pageHref(page.Number + 1)
	}
	ui.Render(w, r, pages.BlogList(view))
}

func (h *BlogHandler) pageHref(n int) string {
	if n <= 1 {
		return h.basePath
	}
	return h.basePath + "?page=" + strconv.Itoa(n)
}

// ShowPost serves top-level posts and sub-posts alike; the slug wildcard
// spans the parent segment.
func (h *BlogHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	snap, ok := snapshot(w, r, h.blogService)
	if !ok {
		return
	}

	post, found := snap.Post(slug)
	if !found {
		notFound(w, r)
		return
	}

	doc, err := h.blogService.Render(slug)
	if err != nil {
		if service.IsNotFound(err) {
			notFound(w, r)
			return
		}
		slog.Error("render post failed", logfields.Slug(slug), logfields.Error(err))
		serverError(w, r)
		return
	}

	view := h.postPage(snap, post, doc.HTML, doc.Headings)
	view.Canonical = siteConfig(r).BlogURL(post.Slug)
	ui.Render(w, r, pages.BlogPost(view))
}

func (h *BlogHandler) postPage(snap *blog.Snapshot, post *model.BlogPost, html []byte, headings []model.Heading) pages.PostPage {
	adj := snap.Adjacent(post.Slug)
	view := pages.PostPage{
		Title:               post.Title,
		Description:         post.Description,
		Date:                blog.FormatDate(post.Date),
		ReadingTime:         snap.ReadingTime(post.Slug),
		CombinedReadingTime: snap.CombinedReadingTime(post.Slug),
		Image:               post.Image,
		HTML:                html,
		Tags:                tagLinks(h.basePath, post.Tags),
		Authors:             snap.ResolveAuthors(post.AuthorIDs),
		AuthorCards:         authorCards(snap, post.AuthorIDs),
		Breadcrumbs:         snap.Breadcrumbs(h.basePath, post),
		Headings:            headings,
		Newer:               h.postLink(adj.Newer),
		Older:               h.postLink(adj.Older),
		Parent:              h.postLink(adj.Parent),
		SubpostCount:        snap.SubpostCount(post.Slug),
	}

	series := post.Slug
	if post.IsSubpost() {
		series = post.Parent
	}
	for _, sp := range snap.Subposts(series) {
		view.Subposts = append(view.Subposts, pages.Link{Href: postHref(h.basePath, sp.Slug), Label: sp.Title})
	}
	return view
}

// authorCards builds profile cards for the registered authors of a post.
func authorCards(snap *blog.Snapshot, ids []string) []pages.AuthorCard {
	var cards []pages.AuthorCard
	for _, ref := range snap.ResolveAuthors(ids) {
		if !ref.Registered {
			continue
		}
		a, _ := snap.Author(ref.ID)
		cards = append(cards, pages.AuthorCard{
			Name:     ref.Name,
			Avatar:   ref.Avatar,
			Pronouns: a.Pronouns,
			Bio:      a.Bio,
			Links:    blog.SocialLinks(a),
		})
	}
	return cards
}

func (h *BlogHandler) postLink(p *model.BlogPost) *pages.Link {
	if p == nil {
		return nil
	}
	return &pages.Link{Href: postHref(h.basePath, p.Slug), Label: p.Title}
}

func (h *BlogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	snap, ok := snapshot(w, r, h.blogService)
	if !ok {
		return
	}

	counts := snap.TagCounts()
	tags := make([]pages.TagLink, 0, len(counts))
	for _, tc := range counts {
		tags = append(tags, pages.TagLink{
			Link:  pages.Link{Href: tagHref(h.basePath, tc.Tag), Label: tc.Tag},
			Count: tc.Count,
		})
	}
	ui.Render(w, r, pages.Tags(tags))
}

func (h *BlogHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	snap, ok := snapshot(w, r, h.blogService)
	if !ok {
		return
	}

	posts := snap.PostsByTag(tag)
	if len(posts) == 0 {
		notFound(w, r)
		return
	}

	ui.Render(w, r, pages.BlogList(pages.ListPage{
		Heading:     "Tagged " + tag,
		Description: pluralPosts(len(posts)),
		Years:       yearCards(snap, h.basePath, posts),
		Number:      1,
		TotalPages:  1,
	}))
}

// Feed serves the RSS document. The ETag is a content hash, so unchanged
// content answers conditional requests with 304.
func (h *BlogHandler) Feed(w http.ResponseWriter, r *http.Request) {
	snap, ok := snapshot(w, r, h.blogService)
	if !ok {
		return
	}

	body, err := h.feedService.Generate(snap.TopLevelPosts(), snap.BuiltAt)
	if err != nil {
		slog.Error("generate feed failed", logfields.Error(err))
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	etag := service.ETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", service.FeedContentType)
	_, _ = w.Write(body)
}

func yearCards(snap *blog.Snapshot, basePath string, posts []*model.BlogPost) []pages.YearCards {
	groups := blog.GroupByYear(posts)
	out := make([]pages.YearCards, 0, len(groups))
	for _, g := range groups {
		yc := pages.YearCards{Year: g.Year}
		for _, p := range g.Posts {
			yc.Cards = append(yc.Cards, postCard(snap, basePath, p))
		}
		out = append(out, yc)
	}
	return out
}

func postCard(snap *blog.Snapshot, basePath string, p *model.BlogPost) pages.PostCard {
	return pages.PostCard{
		Href:         postHref(basePath, p.Slug),
		Title:        p.Title,
		Description:  p.Description,
		Date:         blog.FormatDate(p.Date),
		ReadingTime:  snap.CombinedReadingTime(p.Slug),
		Image:        p.Image,
		Tags:         tagLinks(basePath, p.Tags),
		Authors:      snap.ResolveAuthors(p.AuthorIDs),
		SubpostCount: snap.SubpostCount(p.Slug),
	}
}

func tagLinks(basePath string, tags []string) []pages.Link {
	links := make([]pages.Link, 0, len(tags))
	for _, t := range tags {
		links = append(links, pages.Link{Href: tagHref(basePath, t), Label: t})
	}
	return links
}

func postHref(basePath, slug string) string {
	return basePath + "/" + slug
}

func tagHref(basePath, tag string) string {
	return basePath + "/tags/" + url.PathEscape(tag)
}

func pluralPosts(n int) string {
	if n == 1 {
		return "1 post"
	}
	return strconv.Itoa(n) + " posts"
}
