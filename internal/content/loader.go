// Package content reads blog posts and author profiles from the content
// directory and normalizes them into model values.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/unchartedsh/site/internal/frontmatter"
	"github.com/unchartedsh/site/internal/logfields"
	"github.com/unchartedsh/site/internal/model"
	"github.com/unchartedsh/site/internal/readingtime"
	"github.com/unchartedsh/site/internal/slug"
)

const (
	blogDir    = "blog"
	authorsDir = "authors"

	DefaultTitle = "Untitled"
)

type postFrontMatter struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Date        frontmatter.Date `yaml:"date"`
	Order       int              `yaml:"order"`
	Image       string           `yaml:"image"`
	Tags        []string         `yaml:"tags"`
	Authors     []string         `yaml:"authors"`
	Draft       bool             `yaml:"draft"`
}

type Loader struct {
	contentPath   string
	defaultAvatar string
}

func NewLoader(contentPath, defaultAvatar string) *Loader {
	return &Loader{
		contentPath:   contentPath,
		defaultAvatar: defaultAvatar,
	}
}

func (l *Loader) ContentPath() string {
	return l.contentPath
}

func (l *Loader) BlogPath() string {
	return filepath.Join(l.contentPath, blogDir)
}

func (l *Loader) AuthorsPath() string {
	return filepath.Join(l.contentPath, authorsDir)
}

// Posts walks the blog directory and returns every non-draft post, newest
// first. A missing blog directory yields no posts. Malformed front-matter,
// unparsable dates and slug collisions fail the whole load.
func (l *Loader) Posts() ([]*model.BlogPost, error) {
	root := l.BlogPath()
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return []*model.BlogPost{}, nil
	}

	var all []*model.BlogPost
	claimed := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !slug.IsDocument(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		s := slug.FromPath(rel)
		if s == "" {
			slog.Debug("skipping blog root index", logfields.Path(path))
			return nil
		}
		if other, ok := claimed[s]; ok {
			return &DocumentError{Path: path, OtherPath: other, Err: fmt.Errorf("%w %q", ErrDuplicateSlug, s)}
		}
		claimed[s] = path

		post, err := l.loadPost(path, rel, s)
		if err != nil {
			return err
		}
		all = append(all, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	posts := make([]*model.BlogPost, 0, len(all))
	for _, post := range all {
		if post.Draft {
			continue
		}
		posts = append(posts, post)
	}

	SortNewestFirst(posts)
	return posts, nil
}

// SortNewestFirst orders posts by date descending, keeping input order for
// equal dates. Posts without a date sort last.
func SortNewestFirst(posts []*model.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

func (l *Loader) loadPost(path, rel, s string) (*model.BlogPost, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fm, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)}
	}

	var meta postFrontMatter
	err = frontmatter.Decode(fm, &meta)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)}
	}

	post := &model.BlogPost{
		Slug:        s,
		Path:        rel,
		Title:       strings.TrimSpace(meta.Title),
		Description: meta.Description,
		Date:        meta.Date.Time,
		Order:       meta.Order,
		Image:       meta.Image,
		Tags:        uniqueNonEmpty(meta.Tags),
		AuthorIDs:   uniqueNonEmpty(meta.Authors),
		Draft:       meta.Draft,
		Body:        string(body),
	}
	if slug.IsSubpost(s) {
		post.Parent = slug.Parent(s)
	}
	if post.Title == "" {
		post.Title = DefaultTitle
	}
	post.WordCount = readingtime.WordCount(post.Body)

	return post, nil
}

// uniqueNonEmpty drops empty and repeated values, keeping first occurrences
// in their original order.
func uniqueNonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// RawContent returns the full source of the post file for slug, trying
// <slug>/index.mdx, <slug>/index.md, <slug>.mdx and <slug>.md in that order.
func (l *Loader) RawContent(s string) ([]byte, error) {
	if !slug.Valid(s) {
		return nil, ErrNotFound
	}

	base := filepath.Join(l.BlogPath(), filepath.FromSlash(s))
	candidates := []string{
		filepath.Join(base, "index.mdx"),
		filepath.Join(base, "index.md"),
		base + ".mdx",
		base + ".md",
	}
	for _, candidate := range candidates {
		content, err := os.ReadFile(candidate)
		if err == nil {
			return content, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return nil, fmt.Errorf("read %s: %w", candidate, err)
	}
	return nil, ErrNotFound
}
