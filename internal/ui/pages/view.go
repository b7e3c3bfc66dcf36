// Package pages holds the site's page components.
package pages

import (
	"context"
	"strconv"

	"github.com/unchartedsh/site/internal/ctxkeys"
	"github.com/unchartedsh/site/internal/model"
	"github.com/unchartedsh/site/internal/ui"
)

// Meta describes the document head of a page.
type Meta struct {
	Title       string
	Description string
	Image       string
	Canonical   string
}

type Link struct {
	Href  string
	Label string
}

// PostCard is the list view of a post.
type PostCard struct {
	Href         string
	Title        string
	Description  string
	Date         string
	ReadingTime  string
	Image        string
	Tags         []Link
	Authors      []model.AuthorRef
	SubpostCount int
}

type YearCards struct {
	Year  string
	Cards []PostCard
}

// ListPage is the paginated blog index, also used for a single tag.
type ListPage struct {
	Heading     string
	Description string
	Years       []YearCards
	Number      int
	TotalPages  int
	PrevHref    string
	NextHref    string
}

type TagLink struct {
	Link
	Count int
}

// AuthorCard is a registered author's profile shown under a post.
type AuthorCard struct {
	Name     string
	Avatar   string
	Pronouns string
	Bio      string
	Links    []model.SocialLink
}

// PostPage is everything the post view shows.
type PostPage struct {
	Title               string
	Description         string
	Date                string
	ReadingTime         string
	CombinedReadingTime string
	Image               string
	Canonical           string
	HTML                []byte
	Tags                []Link
	Authors             []model.AuthorRef
	AuthorCards         []AuthorCard
	Breadcrumbs         []model.Breadcrumb
	Headings            []model.Heading
	Newer               *Link
	Older               *Link
	Parent              *Link
	Subposts            []Link
	SubpostCount        int
}

const (
	cardClass = "group block rounded-lg border p-4 transition-colors hover:bg-muted/50"
	navLink   = "text-sm text-muted-foreground hover:text-foreground"
)

func siteName(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.AppName
	}
	return ""
}

func tagline(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.AppTagline
	}
	return ""
}

func blogBase(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.BlogBasePath
	}
	return ""
}

// blogHome is the blog index href; a blog mounted at the root lives at "/".
func blogHome(ctx context.Context) string {
	if base := blogBase(ctx); base != "" {
		return base
	}
	return "/"
}

func pageTitle(ctx context.Context, title string) string {
	if title == "" {
		return siteName(ctx)
	}
	return title + " | " + siteName(ctx)
}

func navClass(ctx context.Context, href string) string {
	if ctxkeys.URLPath(ctx) == href {
		return ui.Class(navLink, "text-foreground font-medium")
	}
	return navLink
}

func avatarSize(compact bool) string {
	if compact {
		return "size-5"
	}
	return "size-8"
}

// headingIndent indents table-of-contents entries below depth 2.
func headingIndent(depth int) string {
	if depth <= 2 {
		return ""
	}
	return "ml-" + strconv.Itoa((depth-2)*3)
}

func subpostLabel(n int) string {
	if n == 1 {
		return "1 subpost"
	}
	return strconv.Itoa(n) + " subposts"
}

func pageLabel(number, total int) string {
	return "Page " + strconv.Itoa(number) + " of " + strconv.Itoa(total)
}
