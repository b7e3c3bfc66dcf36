package model

import (
	"time"
)

// BlogPost is a published document from the blog content tree with every
// optional front-matter field already normalized.
type BlogPost struct {
	Slug        string
	Parent      string // parent slug; empty for top-level posts
	Path        string // source file relative to the blog root, forward slashes
	Title       string
	Description string
	Date        time.Time
	Order       int
	Image       string
	Tags        []string
	AuthorIDs   []string
	Draft       bool
	Body        string // markdown with the front-matter removed
	WordCount   int
}

// IsSubpost reports whether the post is nested under a parent post.
func (p *BlogPost) IsSubpost() bool {
	return p.Parent != ""
}

// Adjacent holds the navigation neighbours of a post. Newer and Older are
// nil at the ends of a collection; Parent is only set for sub-posts whose
// parent exists.
type Adjacent struct {
	Newer  *BlogPost
	Older  *BlogPost
	Parent *BlogPost
}

type TagCount struct {
	Tag   string
	Count int
}

type YearGroup struct {
	Year  string
	Posts []*BlogPost
}

// Heading is a table-of-contents entry.
type Heading struct {
	ID    string
	Text  string
	Depth int
}

type Breadcrumb struct {
	Href  string
	Label string
}

type Page struct {
	Posts      []*BlogPost
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}
