package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unchartedsh/site/internal/model"
)

func TestResolveAuthors(t *testing.T) {
	s := mustSnapshot(t, nil,
		&model.Author{ID: "alice", Name: "Alice Doe", Avatar: "/a.png", LinkedIn: "https://linkedin.com/in/alice"},
		&model.Author{ID: "bob", Name: "Bob"},
	)

	refs := s.ResolveAuthors([]string{"bob", "ghost", "alice"})
	require.Equal(t, []model.AuthorRef{
		{ID: "bob", Name: "Bob", Avatar: "/logo.png", Registered: true},
		{ID: "ghost", Name: "ghost", Avatar: "/logo.png"},
		{ID: "alice", Name: "Alice Doe", Avatar: "/a.png", Registered: true, SocialLink: "https://linkedin.com/in/alice"},
	}, refs)

	require.Empty(t, s.ResolveAuthors(nil))

	a, ok := s.Author("alice")
	require.True(t, ok)
	require.Equal(t, "Alice Doe", a.Name)
	_, ok = s.Author("ghost")
	require.False(t, ok)
	require.Len(t, s.Authors(), 2)
}

func TestSocialLinks(t *testing.T) {
	links := SocialLinks(&model.Author{
		Mail:     "a@example.com",
		LinkedIn: "https://linkedin.com/in/a",
		Website:  "https://a.dev",
		GitHub:   "https://github.com/a",
	})
	require.Equal(t, []model.SocialLink{
		{Href: "https://a.dev", Label: "Website"},
		{Href: "https://github.com/a", Label: "GitHub"},
		{Href: "https://linkedin.com/in/a", Label: "LinkedIn"},
		{Href: "mailto:a@example.com", Label: "Email"},
	}, links)

	require.Empty(t, SocialLinks(&model.Author{ID: "x"}))
	require.Nil(t, SocialLinks(nil))
}

func TestGroupByYear(t *testing.T) {
	posts := []*model.BlogPost{
		mkPost("c", "2024-03-01"),
		mkPost("b", "2023-12-01"),
		mkPost("a", "2024-01-01"),
		mkPost("z", "2022-05-05"),
	}
	groups := GroupByYear(posts)
	require.Len(t, groups, 3)
	require.Equal(t, "2024", groups[0].Year)
	require.Equal(t, []string{"c", "a"}, slugsOf(groups[0].Posts))
	require.Equal(t, "2023", groups[1].Year)
	require.Equal(t, "2022", groups[2].Year)

	require.Empty(t, GroupByYear(nil))

	undated := &model.BlogPost{Slug: "someday"}
	groups = GroupByYear([]*model.BlogPost{mkPost("c", "2024-03-01"), undated})
	require.Len(t, groups, 2)
	require.Equal(t, UndatedYear, groups[1].Year)
	require.Equal(t, []string{"someday"}, slugsOf(groups[1].Posts))
}

func TestPaginate(t *testing.T) {
	var posts []*model.BlogPost
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		posts = append(posts, mkPost(s, "2024-01-01"))
	}

	first := Paginate(posts, 1, 3)
	require.Equal(t, []string{"a", "b", "c"}, slugsOf(first.Posts))
	require.Equal(t, 3, first.TotalPages)
	require.False(t, first.HasPrev)
	require.True(t, first.HasNext)

	last := Paginate(posts, 3, 3)
	require.Equal(t, []string{"g"}, slugsOf(last.Posts))
	require.True(t, last.HasPrev)
	require.False(t, last.HasNext)

	require.Equal(t, 3, Paginate(posts, 99, 3).Number)
	require.Equal(t, 1, Paginate(posts, -1, 3).Number)

	empty := Paginate(nil, 1, 6)
	require.Empty(t, empty.Posts)
	require.Equal(t, 1, empty.TotalPages)
	require.False(t, empty.HasNext)
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "March 1, 2024", FormatDate(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	require.Equal(t, "", FormatDate(time.Time{}))
}

func TestBreadcrumbs(t *testing.T) {
	trip := mkPost("trip", "2024-01-01")
	trip.Title = "Two Weeks in Japan"
	day := mkPost("trip/day-1", "2024-01-02")
	day.Title = "Day 1"
	orphan := mkPost("tokyo-food-guide/ramen", "2024-01-02")
	orphan.Title = "Ramen"

	s := mustSnapshot(t, []*model.BlogPost{trip, day, orphan})

	require.Equal(t, []model.Breadcrumb{
		{Href: "/blog", Label: "Blog"},
		{Href: "/blog/trip", Label: "Two Weeks in Japan"},
	}, s.Breadcrumbs("/blog", trip))

	require.Equal(t, []model.Breadcrumb{
		{Href: "/blog", Label: "Blog"},
		{Href: "/blog/trip", Label: "Two Weeks in Japan"},
		{Href: "/blog/trip/day-1", Label: "Day 1"},
	}, s.Breadcrumbs("/blog", day))

	crumbs := s.Breadcrumbs("/blog", orphan)
	require.Equal(t, "Tokyo Food Guide", crumbs[1].Label)
}

func TestLabelFromSlug(t *testing.T) {
	require.Equal(t, "Tokyo Food Guide", LabelFromSlug("tokyo-food-guide"))
	require.Equal(t, "Rail Pass", LabelFromSlug("rail_pass/day-1"))
}
