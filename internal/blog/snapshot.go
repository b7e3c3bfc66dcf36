// Package blog builds the navigable post graph over a loaded content set.
//
// A Snapshot is immutable once built. Derived views (top-level order,
// sub-post groups, tag indices) are computed on first use and memoized on the
// snapshot, so a snapshot can be shared by concurrent request handlers.
package blog

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/unchartedsh/site/internal/content"
	"github.com/unchartedsh/site/internal/model"
	"github.com/unchartedsh/site/internal/readingtime"
	"github.com/unchartedsh/site/internal/slug"
)

type Options struct {
	DefaultAvatar string
	Now           func() time.Time
}

type Snapshot struct {
	BuildID string
	BuiltAt time.Time

	posts         []*model.BlogPost
	bySlug        map[string]*model.BlogPost
	authors       []*model.Author
	authorByID    map[string]*model.Author
	defaultAvatar string

	topOnce sync.Once
	top     []*model.BlogPost
	topIdx  map[string]int

	subOnce sync.Once
	subs    map[string][]*model.BlogPost

	tagOnce  sync.Once
	tags     []model.TagCount
	tagPosts map[string][]*model.BlogPost
}

// Load reads posts and authors through l and builds a snapshot from them.
func Load(l *content.Loader, opts Options) (*Snapshot, error) {
	posts, err := l.Posts()
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	authors, err := l.Authors()
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	return NewSnapshot(posts, authors, opts)
}

// NewSnapshot indexes posts and authors. Drafts are dropped; duplicate slugs
// or author ids are rejected. Posts are reordered newest first, keeping input
// order among equal dates.
func NewSnapshot(posts []*model.BlogPost, authors []*model.Author, opts Options) (*Snapshot, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	s := &Snapshot{
		BuildID:       uuid.NewString(),
		BuiltAt:       now(),
		posts:         make([]*model.BlogPost, 0, len(posts)),
		bySlug:        make(map[string]*model.BlogPost, len(posts)),
		authors:       make([]*model.Author, 0, len(authors)),
		authorByID:    make(map[string]*model.Author, len(authors)),
		defaultAvatar: opts.DefaultAvatar,
	}

	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if seen[p.Slug] {
			return nil, fmt.Errorf("%w %q", content.ErrDuplicateSlug, p.Slug)
		}
		seen[p.Slug] = true
		if p.Draft {
			continue
		}
		s.posts = append(s.posts, p)
		s.bySlug[p.Slug] = p
	}
	content.SortNewestFirst(s.posts)

	for _, a := range authors {
		if _, ok := s.authorByID[a.ID]; ok {
			return nil, fmt.Errorf("%w %q", content.ErrDuplicateAuthor, a.ID)
		}
		s.authorByID[a.ID] = a
		s.authors = append(s.authors, a)
	}

	return s, nil
}

// All returns every published post, newest first.
func (s *Snapshot) All() []*model.BlogPost {
	return s.posts
}

// Post returns the post with the given slug, top-level or sub-post.
func (s *Snapshot) Post(slug string) (*model.BlogPost, bool) {
	p, ok := s.bySlug[slug]
	return p, ok
}

// TopLevelPosts returns posts without a parent, newest first.
func (s *Snapshot) TopLevelPosts() []*model.BlogPost {
	s.topOnce.Do(func() {
		s.top = make([]*model.BlogPost, 0, len(s.posts))
		s.topIdx = make(map[string]int, len(s.posts))
		for _, p := range s.posts {
			if p.IsSubpost() {
				continue
			}
			s.topIdx[p.Slug] = len(s.top)
			s.top = append(s.top, p)
		}
	})
	return s.top
}

// RecentPosts returns at most n top-level posts, newest first.
func (s *Snapshot) RecentPosts(n int) []*model.BlogPost {
	top := s.TopLevelPosts()
	if n < 0 {
		n = 0
	}
	return top[:min(n, len(top))]
}

func (s *Snapshot) subposts() map[string][]*model.BlogPost {
	s.subOnce.Do(func() {
		s.subs = make(map[string][]*model.BlogPost)
		for _, p := range s.posts {
			if p.IsSubpost() {
				s.subs[p.Parent] = append(s.subs[p.Parent], p)
			}
		}
		for _, group := range s.subs {
			slices.SortStableFunc(group, func(a, b *model.BlogPost) int {
				if c := a.Date.Compare(b.Date); c != 0 {
					return c
				}
				return cmp.Compare(a.Order, b.Order)
			})
		}
	})
	return s.subs
}

// Subposts returns the sub-posts of parentSlug, oldest first with Order
// breaking ties. The parent itself need not exist.
func (s *Snapshot) Subposts(parentSlug string) []*model.BlogPost {
	return s.subposts()[parentSlug]
}

func (s *Snapshot) HasSubposts(parentSlug string) bool {
	return len(s.Subposts(parentSlug)) > 0
}

func (s *Snapshot) SubpostCount(parentSlug string) int {
	return len(s.Subposts(parentSlug))
}

// Parent returns the top-level post a sub-post belongs to. It returns nil for
// top-level posts, unknown slugs and orphaned sub-posts.
func (s *Snapshot) Parent(postSlug string) *model.BlogPost {
	if !slug.IsSubpost(postSlug) {
		return nil
	}
	p, ok := s.bySlug[slug.Parent(postSlug)]
	if !ok || p.IsSubpost() {
		return nil
	}
	return p
}

// Adjacent returns the navigation neighbours of a post. Top-level posts move
// through TopLevelPosts; sub-posts move through their sibling group and also
// carry their parent. Unknown slugs have no neighbours.
func (s *Snapshot) Adjacent(postSlug string) model.Adjacent {
	p, ok := s.bySlug[postSlug]
	if !ok {
		return model.Adjacent{}
	}

	if !p.IsSubpost() {
		top := s.TopLevelPosts()
		i := s.topIdx[postSlug]
		var adj model.Adjacent
		if i > 0 {
			adj.Newer = top[i-1]
		}
		if i+1 < len(top) {
			adj.Older = top[i+1]
		}
		return adj
	}

	siblings := s.Subposts(p.Parent)
	adj := model.Adjacent{Parent: s.Parent(postSlug)}
	i := slices.Index(siblings, p)
	if i < 0 {
		return adj
	}
	if i > 0 {
		adj.Older = siblings[i-1]
	}
	if i+1 < len(siblings) {
		adj.Newer = siblings[i+1]
	}
	return adj
}

func (s *Snapshot) tagIndex() {
	s.tagOnce.Do(func() {
		counts := make(map[string]int)
		var order []string
		s.tagPosts = make(map[string][]*model.BlogPost)
		for _, p := range s.TopLevelPosts() {
			for _, t := range p.Tags {
				if counts[t] == 0 {
					order = append(order, t)
				}
				counts[t]++
				s.tagPosts[t] = append(s.tagPosts[t], p)
			}
		}

		s.tags = make([]model.TagCount, 0, len(order))
		for _, t := range order {
			s.tags = append(s.tags, model.TagCount{Tag: t, Count: counts[t]})
		}

		col := collate.New(language.English)
		sort.SliceStable(s.tags, func(i, j int) bool {
			a, b := s.tags[i], s.tags[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return col.CompareString(a.Tag, b.Tag) < 0
		})
	})
}

// TagCounts counts tags over top-level posts, most used first, ties in
// alphabetical order.
func (s *Snapshot) TagCounts() []model.TagCount {
	s.tagIndex()
	return s.tags
}

// PostsByTag returns top-level posts carrying tag, newest first. Matching is
// exact and case-sensitive: "Japan" does not match "japan".
func (s *Snapshot) PostsByTag(tag string) []*model.BlogPost {
	s.tagIndex()
	return s.tagPosts[tag]
}

// WordCount returns the word count of a post, zero for unknown slugs.
func (s *Snapshot) WordCount(postSlug string) int {
	p, ok := s.bySlug[postSlug]
	if !ok {
		return 0
	}
	return p.WordCount
}

// CombinedWordCount adds the words of every sub-post to a top-level post's
// own count. Sub-posts count only themselves.
func (s *Snapshot) CombinedWordCount(postSlug string) int {
	p, ok := s.bySlug[postSlug]
	if !ok {
		return 0
	}
	if p.IsSubpost() {
		return p.WordCount
	}
	total := p.WordCount
	for _, sub := range s.Subposts(postSlug) {
		total += sub.WordCount
	}
	return total
}

func (s *Snapshot) ReadingTime(postSlug string) string {
	return readingtime.Format(s.WordCount(postSlug))
}

func (s *Snapshot) CombinedReadingTime(postSlug string) string {
	return readingtime.Format(s.CombinedWordCount(postSlug))
}
