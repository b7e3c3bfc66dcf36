package blog

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/unchartedsh/site/internal/model"
	"github.com/unchartedsh/site/internal/slug"
)

const (
	DateLayout = "January 2, 2006"

	// UndatedYear labels the year group of posts without a date.
	UndatedYear = "Undated"
)

// FormatDate renders a post date for display. Undated posts render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// GroupByYear buckets posts by calendar year. Buckets appear in the order
// their year is first seen and keep the input order inside each bucket.
// Undated posts share the UndatedYear bucket.
func GroupByYear(posts []*model.BlogPost) []model.YearGroup {
	var groups []model.YearGroup
	index := make(map[string]int)
	for _, p := range posts {
		year := UndatedYear
		if !p.Date.IsZero() {
			year = strconv.Itoa(p.Date.Year())
		}
		i, ok := index[year]
		if !ok {
			i = len(groups)
			index[year] = i
			groups = append(groups, model.YearGroup{Year: year})
		}
		groups[i].Posts = append(groups[i].Posts, p)
	}
	return groups
}

// Paginate returns page number (1-based) of posts split into pages of size.
// Out of range page numbers are clamped.
func Paginate(posts []*model.BlogPost, number, size int) model.Page {
	if size < 1 {
		size = len(posts)
	}
	total := 1
	if size > 0 && len(posts) > 0 {
		total = (len(posts) + size - 1) / size
	}
	number = min(max(number, 1), total)

	start := min((number-1)*size, len(posts))
	end := min(start+size, len(posts))
	return model.Page{
		Posts:      posts[start:end],
		Number:     number,
		TotalPages: total,
		HasPrev:    number > 1,
		HasNext:    number < total,
	}
}

// Breadcrumbs builds the trail from the blog index to post. Sub-posts get a
// parent crumb even when the parent post does not exist, labelled from its
// slug.
func (s *Snapshot) Breadcrumbs(basePath string, post *model.BlogPost) []model.Breadcrumb {
	crumbs := []model.Breadcrumb{{Href: basePath, Label: "Blog"}}
	if post == nil {
		return crumbs
	}
	if post.IsSubpost() {
		label := LabelFromSlug(post.Parent)
		if parent := s.Parent(post.Slug); parent != nil {
			label = parent.Title
		}
		crumbs = append(crumbs, model.Breadcrumb{Href: basePath + "/" + post.Parent, Label: label})
	}
	return append(crumbs, model.Breadcrumb{Href: basePath + "/" + post.Slug, Label: post.Title})
}

// LabelFromSlug turns "tokyo-food-guide" into "Tokyo Food Guide".
func LabelFromSlug(s string) string {
	s = strings.ReplaceAll(slug.Parent(s), "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}
